package domain

import "time"

// TicketHistory is an append-only audit entry describing one ticket event.
type TicketHistory struct {
	ID          string
	WorkspaceID string
	TicketID    string
	EventType   string
	ActorID     *string
	Payload     map[string]any
	CreatedAt   time.Time
}
