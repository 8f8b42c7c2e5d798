package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/service"
)

type publisherFunc func()

func (f publisherFunc) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f()
	cmd := redis.NewIntCmd(ctx, "publish", channel, message)
	cmd.SetVal(1)
	return cmd
}

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep(time.Time) int {
	s.calls.Add(1)
	return 1
}

func TestWorkspaceJanitor_SweepsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sweeper := &countingSweeper{}

	done := StartWorkspaceJanitor(ctx, sweeper, 5*time.Millisecond, nil)
	require.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestStartNotificationWorker_RegistersHandlers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(nil)
	var published int
	publisher := publisherFunc(func() { published++ })

	StartNotificationWorker(
		service.NewNotificationService(dispatcher, publisher, nil, config.NotificationConfig{RedisChannel: "c"}),
		service.NewHistoryRecorder(dispatcher, nil, nil),
	)
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventTicketCreated}))
	assert.Equal(t, 1, published)

	StartNotificationWorker(nil, nil)
}
