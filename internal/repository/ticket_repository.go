package repository

import (
	"context"
	"sync"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// TicketRepository keeps a workspace's tickets, newest first.
type TicketRepository interface {
	Prepend(ctx context.Context, ticket domain.Ticket) error
	Append(ctx context.Context, ticket domain.Ticket) error
	List(ctx context.Context) ([]domain.Ticket, error)
	GetByID(ctx context.Context, id string) (domain.Ticket, error)
	// Update applies mutate to a copy of the ticket and stores the copy only when mutate
	// returns nil.
	Update(ctx context.Context, id string, mutate func(*domain.Ticket) error) (domain.Ticket, error)
}

type ticketRepository struct {
	mu      sync.RWMutex
	tickets []domain.Ticket
}

// NewTicketRepository returns an empty in-memory ticket list.
func NewTicketRepository() TicketRepository {
	return &ticketRepository{}
}

func (r *ticketRepository) Prepend(_ context.Context, ticket domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]domain.Ticket, 0, len(r.tickets)+1)
	next = append(next, ticket.Clone())
	r.tickets = append(next, r.tickets...)
	return nil
}

func (r *ticketRepository) Append(_ context.Context, ticket domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]domain.Ticket, len(r.tickets), len(r.tickets)+1)
	copy(next, r.tickets)
	r.tickets = append(next, ticket.Clone())
	return nil
}

func (r *ticketRepository) List(_ context.Context) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Ticket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		out = append(out, ticket.Clone())
	}
	return out, nil
}

func (r *ticketRepository) GetByID(_ context.Context, id string) (domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ticket := range r.tickets {
		if ticket.ID == id {
			return ticket.Clone(), nil
		}
	}
	return domain.Ticket{}, ErrNotFound
}

func (r *ticketRepository) Update(_ context.Context, id string, mutate func(*domain.Ticket) error) (domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tickets {
		if r.tickets[i].ID != id {
			continue
		}
		updated := r.tickets[i].Clone()
		if err := mutate(&updated); err != nil {
			return domain.Ticket{}, err
		}
		next := make([]domain.Ticket, len(r.tickets))
		copy(next, r.tickets)
		next[i] = updated
		r.tickets = next
		return updated.Clone(), nil
	}
	return domain.Ticket{}, ErrNotFound
}
