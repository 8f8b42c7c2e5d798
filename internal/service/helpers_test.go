package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/service"
)

type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "plain:" + plain, nil }

func (plainHasher) Matches(hashed, plain string) bool { return hashed == "plain:"+plain }

type sequence struct {
	mu   sync.Mutex
	next int
}

func (s *sequence) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("id-%d", s.next)
}

type recordedEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordedEvents) handle(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordedEvents) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

var fixedNow = time.Date(2025, time.June, 3, 14, 30, 0, 0, time.UTC)

type desk struct {
	directory *service.DirectoryService
	tickets   *service.TicketService
	events    *recordedEvents
}

func newDesk(t *testing.T) desk {
	t.Helper()
	ctx := context.Background()
	ids := &sequence{}
	clock := func() time.Time { return fixedNow }
	recorded := &recordedEvents{}
	dispatcher := events.NewInMemoryDispatcher(nil)
	dispatcher.SubscribeAll(recorded.handle)

	directory := service.NewDirectoryService(service.DirectoryDependencies{
		WorkspaceID: "ws-test",
		AccountRepo: repository.NewAccountRepository(),
		Hasher:      plainHasher{},
		Dispatcher:  dispatcher,
		NewID:       ids.ID,
		Clock:       clock,
	})
	require.NoError(t, directory.SeedAccounts(ctx, service.DefaultSeedAccounts()))

	tickets := service.NewTicketService(service.TicketDependencies{
		WorkspaceID: "ws-test",
		TicketRepo:  repository.NewTicketRepository(),
		Sessions:    directory,
		Dispatcher:  dispatcher,
		NewID:       ids.ID,
		Clock:       clock,
	})
	require.NoError(t, tickets.SeedTickets(ctx, service.DefaultSeedTickets()))

	return desk{directory: directory, tickets: tickets, events: recorded}
}

func (d desk) login(t *testing.T, email, credential string) {
	t.Helper()
	_, err := d.directory.Login(context.Background(), email, credential)
	require.NoError(t, err)
}
