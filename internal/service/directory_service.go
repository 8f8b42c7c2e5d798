package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository"
)

// CredentialHasher hashes and verifies account credentials.
type CredentialHasher interface {
	Hash(plain string) (string, error)
	Matches(hashed, plain string) bool
}

// DirectoryService owns a workspace's roster and its single session.
type DirectoryService struct {
	workspaceID string
	accounts    repository.AccountRepository
	hasher      CredentialHasher
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	newID       func() string
	now         func() time.Time

	mu      sync.RWMutex
	session *domain.Session
}

// DirectoryDependencies bundles collaborators for the directory.
type DirectoryDependencies struct {
	WorkspaceID string
	AccountRepo repository.AccountRepository
	Hasher      CredentialHasher
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	NewID       func() string
	Clock       func() time.Time
}

// AccountInput describes a new account.
type AccountInput struct {
	Name   string
	Email  string
	Role   domain.Role
	Active bool
}

// AccountPatch lists the fields to merge into an account; nil fields are left alone.
type AccountPatch struct {
	Name   *string
	Email  *string
	Role   *domain.Role
	Active *bool
}

// NewDirectoryService constructs an empty directory.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryService{
		workspaceID: deps.WorkspaceID,
		accounts:    deps.AccountRepo,
		hasher:      deps.Hasher,
		dispatcher:  deps.Dispatcher,
		logger:      logger.With(zap.String("workspace_id", deps.WorkspaceID)),
		newID:       defaultIDs(deps.NewID),
		now:         defaultClock(deps.Clock),
	}
}

// SeedAccounts appends the given accounts in order with fresh identifiers.
func (s *DirectoryService) SeedAccounts(ctx context.Context, seeds []SeedAccount) error {
	for _, seed := range seeds {
		hash, err := s.hasher.Hash(seed.Credential)
		if err != nil {
			return err
		}
		record := repository.AccountRecord{
			Account: domain.Account{
				ID:     s.newID(),
				Name:   seed.Name,
				Email:  seed.Email,
				Role:   seed.Role,
				Active: seed.Active,
			},
			CredentialHash: hash,
		}
		if err := s.accounts.Append(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// Login opens a session for the first active account in roster order whose email and
// credential both match. A failed login leaves any existing session in place.
func (s *DirectoryService) Login(ctx context.Context, email, credential string) (domain.Account, error) {
	records, err := s.accounts.List(ctx)
	if err != nil {
		return domain.Account{}, err
	}
	for _, record := range records {
		if record.Account.Email != email || !record.Account.Active {
			continue
		}
		if !s.hasher.Matches(record.CredentialHash, credential) {
			continue
		}

		session := domain.Session{Account: record.Account, StartedAt: s.now()}
		s.mu.Lock()
		s.session = &session
		s.mu.Unlock()

		s.logger.Info("session started", zap.String("account_id", record.Account.ID), zap.String("role", string(record.Account.Role)))
		publishEvent(ctx, s.dispatcher, s.now, events.Event{
			Type:        events.EventSessionStarted,
			WorkspaceID: s.workspaceID,
			Actor:       sessionActor(session),
		})
		return record.Account, nil
	}

	s.logger.Info("login rejected", zap.String("email", email))
	publishEvent(ctx, s.dispatcher, s.now, events.Event{
		Type:        events.EventLoginFailed,
		WorkspaceID: s.workspaceID,
	})
	return domain.Account{}, ErrInvalidCredentials
}

// Logout clears the session. It is a no-op when nobody is logged in.
func (s *DirectoryService) Logout(ctx context.Context) {
	s.mu.Lock()
	previous := s.session
	s.session = nil
	s.mu.Unlock()

	if previous == nil {
		return
	}
	s.logger.Info("session ended", zap.String("account_id", previous.Account.ID))
	publishEvent(ctx, s.dispatcher, s.now, events.Event{
		Type:        events.EventSessionEnded,
		WorkspaceID: s.workspaceID,
		Actor:       sessionActor(*previous),
	})
}

// Current returns the active session, if any.
func (s *DirectoryService) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return domain.Session{}, false
	}
	return *s.session, true
}

// ListAccounts returns the roster in order. Credentials are never part of the result.
func (s *DirectoryService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	records, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	accounts := make([]domain.Account, 0, len(records))
	for _, record := range records {
		accounts = append(accounts, record.Account)
	}
	return accounts, nil
}

// AddAccount appends an account holding DefaultCredential. It does not log the account in
// and does not check email uniqueness.
func (s *DirectoryService) AddAccount(ctx context.Context, input AccountInput) (domain.Account, error) {
	if !input.Role.Valid() {
		return domain.Account{}, ErrInvalidAccount.WithDetails(map[string]any{"role": input.Role})
	}
	hash, err := s.hasher.Hash(DefaultCredential)
	if err != nil {
		return domain.Account{}, err
	}

	account := domain.Account{
		ID:     s.newID(),
		Name:   strings.TrimSpace(input.Name),
		Email:  strings.TrimSpace(input.Email),
		Role:   input.Role,
		Active: input.Active,
	}
	if err := s.accounts.Append(ctx, repository.AccountRecord{Account: account, CredentialHash: hash}); err != nil {
		return domain.Account{}, err
	}

	s.publishAccountEvent(ctx, events.EventAccountCreated, account)
	return account, nil
}

// UpdateAccount merges patch into the account. The identifier never changes; an unknown
// id leaves the roster untouched and yields ErrAccountNotFound.
func (s *DirectoryService) UpdateAccount(ctx context.Context, id string, patch AccountPatch) (domain.Account, error) {
	if patch.Role != nil && !patch.Role.Valid() {
		return domain.Account{}, ErrInvalidAccount.WithDetails(map[string]any{"role": *patch.Role})
	}
	record, err := s.accounts.Update(ctx, id, func(record *repository.AccountRecord) error {
		if patch.Name != nil {
			record.Account.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Email != nil {
			record.Account.Email = strings.TrimSpace(*patch.Email)
		}
		if patch.Role != nil {
			record.Account.Role = *patch.Role
		}
		if patch.Active != nil {
			record.Account.Active = *patch.Active
		}
		return nil
	})
	if err != nil {
		return domain.Account{}, s.accountErr(err, id)
	}
	s.publishAccountEvent(ctx, events.EventAccountUpdated, record.Account)
	return record.Account, nil
}

// DeleteAccount removes the account from the roster. An active session owned by that
// account stays open, and comments it authored keep their snapshot.
func (s *DirectoryService) DeleteAccount(ctx context.Context, id string) error {
	record, err := s.accounts.Delete(ctx, id)
	if err != nil {
		return s.accountErr(err, id)
	}
	s.publishAccountEvent(ctx, events.EventAccountDeleted, record.Account)
	return nil
}

func (s *DirectoryService) accountErr(err error, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAccountNotFound.WithDetails(map[string]any{"account_id": id})
	}
	return err
}

func (s *DirectoryService) publishAccountEvent(ctx context.Context, eventType events.EventType, account domain.Account) {
	event := events.Event{
		Type:        eventType,
		WorkspaceID: s.workspaceID,
		Payload: events.AccountPayload{
			AccountID: account.ID,
			Email:     account.Email,
			Role:      account.Role,
			Active:    account.Active,
		},
	}
	if session, ok := s.Current(); ok {
		event.Actor = sessionActor(session)
	}
	publishEvent(ctx, s.dispatcher, s.now, event)
}
