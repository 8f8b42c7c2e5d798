package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_RoutesByType(t *testing.T) {
	d := NewInMemoryDispatcher(nil)

	var created, all []EventType
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		created = append(created, e.Type)
		return nil
	})
	d.SubscribeAll(func(_ context.Context, e Event) error {
		all = append(all, e.Type)
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketCreated}))
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventSessionEnded}))

	assert.Equal(t, []EventType{EventTicketCreated}, created)
	assert.Equal(t, []EventType{EventTicketCreated, EventSessionEnded}, all)
}

func TestDispatcher_HandlerErrorsDoNotStopDelivery(t *testing.T) {
	var reported []error
	d := NewInMemoryDispatcher(func(_ Event, err error) { reported = append(reported, err) })

	boom := errors.New("boom")
	delivered := 0
	d.Subscribe(EventAccountCreated, func(context.Context, Event) error { return boom })
	d.Subscribe(EventAccountCreated, func(context.Context, Event) error {
		delivered++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventAccountCreated}))
	assert.Equal(t, 1, delivered)
	assert.Equal(t, []error{boom}, reported)
}
