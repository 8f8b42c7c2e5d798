package repository

import (
	"context"
	"sync"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// AccountRecord is the directory's internal representation of an account.
type AccountRecord struct {
	Account        domain.Account
	CredentialHash string
}

// AccountRepository keeps the ordered roster of a workspace.
type AccountRepository interface {
	Append(ctx context.Context, record AccountRecord) error
	List(ctx context.Context) ([]AccountRecord, error)
	GetByID(ctx context.Context, id string) (AccountRecord, error)
	// Update applies mutate to a copy of the record and stores the copy only when mutate
	// returns nil. The identifier cannot be changed.
	Update(ctx context.Context, id string, mutate func(*AccountRecord) error) (AccountRecord, error)
	// Delete removes the record and returns it as it was at removal.
	Delete(ctx context.Context, id string) (AccountRecord, error)
}

type accountRepository struct {
	mu      sync.RWMutex
	records []AccountRecord
}

// NewAccountRepository returns an empty in-memory roster.
func NewAccountRepository() AccountRepository {
	return &accountRepository{}
}

func (r *accountRepository) Append(_ context.Context, record AccountRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]AccountRecord, len(r.records), len(r.records)+1)
	copy(next, r.records)
	r.records = append(next, record)
	return nil
}

func (r *accountRepository) List(_ context.Context) ([]AccountRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]AccountRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *accountRepository) GetByID(_ context.Context, id string) (AccountRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, record := range r.records {
		if record.Account.ID == id {
			return record, nil
		}
	}
	return AccountRecord{}, ErrNotFound
}

func (r *accountRepository) Update(_ context.Context, id string, mutate func(*AccountRecord) error) (AccountRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].Account.ID != id {
			continue
		}
		updated := r.records[i]
		if err := mutate(&updated); err != nil {
			return AccountRecord{}, err
		}
		updated.Account.ID = id
		next := make([]AccountRecord, len(r.records))
		copy(next, r.records)
		next[i] = updated
		r.records = next
		return updated, nil
	}
	return AccountRecord{}, ErrNotFound
}

func (r *accountRepository) Delete(_ context.Context, id string) (AccountRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, record := range r.records {
		if record.Account.ID != id {
			continue
		}
		next := make([]AccountRecord, 0, len(r.records)-1)
		next = append(next, r.records[:i]...)
		r.records = append(next, r.records[i+1:]...)
		return record, nil
	}
	return AccountRecord{}, ErrNotFound
}
