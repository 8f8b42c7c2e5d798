package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository"
)

// HistoryRecorder appends ticket events to the audit trail. Workspace state is never
// rebuilt from it.
type HistoryRecorder struct {
	dispatcher events.Dispatcher
	history    repository.TicketHistoryRepository
	logger     *zap.Logger
}

// NewHistoryRecorder builds the recorder. A nil repository disables recording.
func NewHistoryRecorder(dispatcher events.Dispatcher, history repository.TicketHistoryRepository, logger *zap.Logger) *HistoryRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryRecorder{dispatcher: dispatcher, history: history, logger: logger}
}

// Enabled reports whether an audit store is configured.
func (h *HistoryRecorder) Enabled() bool {
	return h != nil && h.history != nil
}

// RegisterHandlers subscribes to ticket events.
func (h *HistoryRecorder) RegisterHandlers() {
	if h.dispatcher == nil || !h.Enabled() {
		return
	}
	h.dispatcher.Subscribe(events.EventTicketCreated, h.record)
	h.dispatcher.Subscribe(events.EventTicketStatusChanged, h.record)
	h.dispatcher.Subscribe(events.EventTicketCommentAdded, h.record)
}

// History lists audit entries for a ticket of a workspace.
func (h *HistoryRecorder) History(ctx context.Context, workspaceID, ticketID string) ([]domain.TicketHistory, error) {
	if !h.Enabled() {
		return []domain.TicketHistory{}, nil
	}
	entries, err := h.history.ListByTicket(ctx, workspaceID, ticketID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.TicketHistory{}
	}
	return entries, nil
}

func (h *HistoryRecorder) record(ctx context.Context, event events.Event) error {
	payload, err := payloadMap(event.Payload)
	if err != nil {
		return err
	}
	entry := &domain.TicketHistory{
		WorkspaceID: event.WorkspaceID,
		TicketID:    event.TicketID,
		EventType:   string(event.Type),
		Payload:     payload,
	}
	if event.Actor != nil && event.Actor.AccountID != "" {
		actorID := event.Actor.AccountID
		entry.ActorID = &actorID
	}
	if err := h.history.Create(ctx, entry); err != nil {
		h.logger.Warn("audit write failed", zap.String("ticket_id", event.TicketID), zap.Error(err))
		return fmt.Errorf("record %s: %w", event.Type, err)
	}
	return nil
}

func payloadMap(payload interface{}) (map[string]any, error) {
	if payload == nil {
		return map[string]any{}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
