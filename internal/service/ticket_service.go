package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository"
)

// SessionSource answers who is logged in.
type SessionSource interface {
	Current() (domain.Session, bool)
}

// TicketService coordinates ticket workflows for one workspace.
type TicketService struct {
	workspaceID string
	tickets     repository.TicketRepository
	sessions    SessionSource
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	newID       func() string
	now         func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	WorkspaceID string
	TicketRepo  repository.TicketRepository
	Sessions    SessionSource
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	NewID       func() string
	Clock       func() time.Time
}

// TicketInput describes ticket creation payload.
type TicketInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	Category    domain.TicketCategory
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		workspaceID: deps.WorkspaceID,
		tickets:     deps.TicketRepo,
		sessions:    deps.Sessions,
		dispatcher:  deps.Dispatcher,
		logger:      logger.With(zap.String("workspace_id", deps.WorkspaceID)),
		newID:       defaultIDs(deps.NewID),
		now:         defaultClock(deps.Clock),
	}
}

// SeedTickets appends tickets in the given order, assigning identifiers where missing.
func (s *TicketService) SeedTickets(ctx context.Context, seeds []domain.Ticket) error {
	for _, seed := range seeds {
		ticket := seed.Clone()
		if ticket.ID == "" {
			ticket.ID = s.newID()
		}
		if err := s.tickets.Append(ctx, ticket); err != nil {
			return err
		}
	}
	return nil
}

// AddTicket creates an open ticket dated today and puts it at the head of the list.
// No session is required.
func (s *TicketService) AddTicket(ctx context.Context, input TicketInput) (domain.Ticket, error) {
	if input.Priority == "" {
		input.Priority = domain.TicketPriorityMedium
	}
	if input.Category == "" {
		input.Category = domain.TicketCategoryProblem
	}
	if !input.Priority.Valid() || !input.Category.Valid() {
		return domain.Ticket{}, ErrInvalidTicket.WithDetails(map[string]any{
			"priority": input.Priority,
			"category": input.Category,
		})
	}

	ticket := domain.Ticket{
		ID:          s.newID(),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		Priority:    input.Priority,
		Category:    input.Category,
		CreatedAt:   domain.CalendarDate(s.now()),
		Comments:    []domain.Comment{},
	}
	if err := s.tickets.Prepend(ctx, ticket); err != nil {
		return domain.Ticket{}, err
	}

	event := events.Event{
		Type:        events.EventTicketCreated,
		WorkspaceID: s.workspaceID,
		TicketID:    ticket.ID,
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Priority: ticket.Priority,
			Category: ticket.Category,
		},
	}
	if session, ok := s.sessions.Current(); ok {
		event.Actor = sessionActor(session)
	}
	publishEvent(ctx, s.dispatcher, s.now, event)
	return ticket, nil
}

// ListTickets returns all tickets, newest first.
func (s *TicketService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.List(ctx)
}

// GetTicket fetches one ticket.
func (s *TicketService) GetTicket(ctx context.Context, id string) (domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, ticketErr(err, id)
	}
	return ticket, nil
}

// CanUpdateStatus reports whether the current session may change ticket status. Only the
// session role matters; the ticket is accepted for callers that render per-ticket controls.
func (s *TicketService) CanUpdateStatus(_ domain.Ticket) bool {
	session, ok := s.sessions.Current()
	return ok && canChangeStatus(session)
}

// UpdateStatus replaces a ticket's status. Every failure leaves the ticket untouched.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID string, status domain.TicketStatus) (domain.Ticket, error) {
	session, ok := s.sessions.Current()
	if !ok {
		return domain.Ticket{}, ErrNotAuthenticated
	}
	if !canChangeStatus(session) {
		return domain.Ticket{}, ErrStatusChangeForbidden
	}
	if !status.Valid() {
		return domain.Ticket{}, ErrInvalidStatus.WithDetails(map[string]any{"status": status})
	}

	var previous domain.TicketStatus
	ticket, err := s.tickets.Update(ctx, ticketID, func(t *domain.Ticket) error {
		previous = t.Status
		t.Status = status
		return nil
	})
	if err != nil {
		return domain.Ticket{}, ticketErr(err, ticketID)
	}

	s.logger.Debug("ticket status changed",
		zap.String("ticket_id", ticketID),
		zap.String("from", string(previous)),
		zap.String("to", string(status)))
	publishEvent(ctx, s.dispatcher, s.now, events.Event{
		Type:        events.EventTicketStatusChanged,
		WorkspaceID: s.workspaceID,
		TicketID:    ticketID,
		Actor:       sessionActor(session),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: previous,
			NewStatus: status,
		},
	})
	return ticket, nil
}

// AddComment appends a comment authored by the session account. The author's id and name
// are copied into the comment.
func (s *TicketService) AddComment(ctx context.Context, ticketID, content string) (domain.Comment, error) {
	session, ok := s.sessions.Current()
	if !ok {
		return domain.Comment{}, ErrNotAuthenticated
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, ErrEmptyComment
	}

	comment := domain.Comment{
		ID:         s.newID(),
		TicketID:   ticketID,
		AuthorID:   session.Account.ID,
		AuthorName: session.Account.Name,
		Content:    content,
		CreatedAt:  s.now().UTC(),
	}
	if _, err := s.tickets.Update(ctx, ticketID, func(t *domain.Ticket) error {
		t.Comments = append(t.Comments, comment)
		return nil
	}); err != nil {
		return domain.Comment{}, ticketErr(err, ticketID)
	}

	publishEvent(ctx, s.dispatcher, s.now, events.Event{
		Type:        events.EventTicketCommentAdded,
		WorkspaceID: s.workspaceID,
		TicketID:    ticketID,
		Actor:       sessionActor(session),
		Payload: events.TicketCommentAddedPayload{
			CommentID:      comment.ID,
			ContentPreview: stringPreview(comment.Content, 120),
		},
	})
	return comment, nil
}

func canChangeStatus(session domain.Session) bool {
	return session.HasRole(domain.RoleAdmin, domain.RoleTechnician)
}

func ticketErr(err error, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTicketNotFound.WithDetails(map[string]any{"ticket_id": id})
	}
	return err
}
