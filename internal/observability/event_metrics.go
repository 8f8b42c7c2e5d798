package observability

import (
	"context"

	"github.com/spec-kit/helpdesk/internal/events"
)

// Subscribe drives the domain counters from published events.
func (m *Metrics) Subscribe(dispatcher events.Dispatcher) {
	if m == nil || dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketCreated, func(context.Context, events.Event) error {
		m.TicketCreated()
		return nil
	})
	dispatcher.Subscribe(events.EventTicketStatusChanged, func(_ context.Context, e events.Event) error {
		if payload, ok := e.Payload.(events.TicketStatusChangedPayload); ok {
			m.StatusChanged(string(payload.NewStatus))
		}
		return nil
	})
	dispatcher.Subscribe(events.EventTicketCommentAdded, func(context.Context, events.Event) error {
		m.CommentAdded()
		return nil
	})
	dispatcher.Subscribe(events.EventLoginFailed, func(context.Context, events.Event) error {
		m.LoginFailed()
		return nil
	})
}
