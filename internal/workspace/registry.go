package workspace

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/observability"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/service"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

var (
	// ErrNotFound means the workspace expired or never existed.
	ErrNotFound = apperrors.NewUnauthorized("workspace expired or unknown")
	// ErrCapacity means the registry holds MaxWorkspaces live workspaces.
	ErrCapacity = apperrors.NewDomainError("WORKSPACE_CAPACITY", "too many active workspaces", http.StatusServiceUnavailable, nil)
)

// Dependencies configure a Registry.
type Dependencies struct {
	Hasher        service.CredentialHasher
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	Metrics       *observability.Metrics
	IdleTTL       time.Duration
	MaxWorkspaces int
	RateLimit     rate.Limit
	RateBurst     int
	SeedAccounts  []service.SeedAccount
	SeedTickets   []domain.Ticket
	Clock         func() time.Time
	NewID         func() string
}

// Registry owns all live workspaces.
type Registry struct {
	deps Dependencies

	mu    sync.RWMutex
	items map[string]*Workspace
}

// NewRegistry builds an empty registry. Nil seeds fall back to the default roster and
// example tickets.
func NewRegistry(deps Dependencies) *Registry {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	if deps.IdleTTL <= 0 {
		deps.IdleTTL = time.Hour
	}
	if deps.RateLimit <= 0 {
		deps.RateLimit = rate.Inf
	}
	if deps.RateBurst <= 0 {
		deps.RateBurst = 1
	}
	if deps.SeedAccounts == nil {
		deps.SeedAccounts = service.DefaultSeedAccounts()
	}
	if deps.SeedTickets == nil {
		deps.SeedTickets = service.DefaultSeedTickets()
	}
	return &Registry{deps: deps, items: make(map[string]*Workspace)}
}

// Create builds and registers a freshly seeded workspace.
func (r *Registry) Create(ctx context.Context) (*Workspace, error) {
	now := r.deps.Clock()
	if r.full() {
		r.Sweep(now)
		if r.full() {
			return nil, ErrCapacity.WithDetails(map[string]any{"max": r.deps.MaxWorkspaces})
		}
	}

	id := r.deps.NewID()
	directory := service.NewDirectoryService(service.DirectoryDependencies{
		WorkspaceID: id,
		AccountRepo: repository.NewAccountRepository(),
		Hasher:      r.deps.Hasher,
		Dispatcher:  r.deps.Dispatcher,
		Logger:      r.deps.Logger,
		NewID:       r.deps.NewID,
		Clock:       r.deps.Clock,
	})
	if err := directory.SeedAccounts(ctx, r.deps.SeedAccounts); err != nil {
		return nil, err
	}
	tickets := service.NewTicketService(service.TicketDependencies{
		WorkspaceID: id,
		TicketRepo:  repository.NewTicketRepository(),
		Sessions:    directory,
		Dispatcher:  r.deps.Dispatcher,
		Logger:      r.deps.Logger,
		NewID:       r.deps.NewID,
		Clock:       r.deps.Clock,
	})
	if err := tickets.SeedTickets(ctx, r.deps.SeedTickets); err != nil {
		return nil, err
	}

	ws := &Workspace{
		ID:        id,
		CreatedAt: now,
		Directory: directory,
		Tickets:   tickets,
		limiter:   rate.NewLimiter(r.deps.RateLimit, r.deps.RateBurst),
		lastSeen:  now,
	}

	r.mu.Lock()
	if r.deps.MaxWorkspaces > 0 && len(r.items) >= r.deps.MaxWorkspaces {
		r.mu.Unlock()
		return nil, ErrCapacity.WithDetails(map[string]any{"max": r.deps.MaxWorkspaces})
	}
	r.items[id] = ws
	size := len(r.items)
	r.mu.Unlock()

	r.deps.Metrics.SetActiveWorkspaces(size)
	r.deps.Logger.Info("workspace created", zap.String("workspace_id", id), zap.Int("active", size))
	return ws, nil
}

// Get resolves a live workspace and marks it as seen. A workspace idle past the TTL is
// evicted on access even if the janitor has not reached it yet.
func (r *Registry) Get(id string) (*Workspace, error) {
	r.mu.RLock()
	ws, ok := r.items[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	now := r.deps.Clock()
	if ws.idleSince(now) > r.deps.IdleTTL {
		r.Remove(id)
		return nil, ErrNotFound
	}
	ws.touch(now)
	return ws, nil
}

// Remove discards a workspace. It reports whether one was removed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	_, ok := r.items[id]
	delete(r.items, id)
	size := len(r.items)
	r.mu.Unlock()

	if ok {
		r.deps.Metrics.SetActiveWorkspaces(size)
		r.deps.Logger.Info("workspace removed", zap.String("workspace_id", id))
	}
	return ok
}

// Sweep evicts every workspace idle longer than the TTL and returns how many went.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	removed := 0
	for id, ws := range r.items {
		if ws.idleSince(now) > r.deps.IdleTTL {
			delete(r.items, id)
			removed++
		}
	}
	size := len(r.items)
	r.mu.Unlock()

	r.deps.Metrics.SetActiveWorkspaces(size)
	if removed > 0 {
		r.deps.Logger.Info("idle workspaces evicted", zap.Int("removed", removed), zap.Int("active", size))
	}
	return removed
}

// Len reports the number of live workspaces.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *Registry) full() bool {
	return r.deps.MaxWorkspaces > 0 && r.Len() >= r.deps.MaxWorkspaces
}
