package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/service"
)

func TestTickets_SeedOrder(t *testing.T) {
	d := newDesk(t)

	tickets, err := d.tickets.ListTickets(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 3)
	assert.Equal(t, domain.TicketStatusOpen, tickets[0].Status)
	assert.Equal(t, domain.TicketStatusInProgress, tickets[1].Status)
	assert.Equal(t, domain.TicketStatusResolved, tickets[2].Status)
	assert.Equal(t, "2024-03-15", tickets[0].CreatedAt.Format(domain.DateLayout))
	for _, ticket := range tickets {
		assert.NotEmpty(t, ticket.ID)
		assert.Empty(t, ticket.Comments)
	}
}

func TestTickets_AddTicketGoesFirst(t *testing.T) {
	d := newDesk(t)
	ctx := context.Background()

	ticket, err := d.tickets.AddTicket(ctx, service.TicketInput{
		Title: "A", Description: "B", Priority: domain.TicketPriorityHigh, Category: domain.TicketCategoryProblem,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Empty(t, ticket.Comments)
	assert.Equal(t, "2025-06-03", ticket.CreatedAt.Format(domain.DateLayout))

	tickets, err := d.tickets.ListTickets(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 4)
	assert.Equal(t, ticket.ID, tickets[0].ID)
	assert.Equal(t, "A", tickets[0].Title)
	assert.Equal(t, "B", tickets[0].Description)
	assert.Contains(t, d.events.types(), events.EventTicketCreated)
}

func TestTickets_AddTicketWithoutSessionAndDefaults(t *testing.T) {
	d := newDesk(t)

	ticket, err := d.tickets.AddTicket(context.Background(), service.TicketInput{Title: "", Description: ""})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.Equal(t, domain.TicketCategoryProblem, ticket.Category)
	assert.Empty(t, ticket.Title)
}

func TestTickets_AddTicketRejectsUnknownEnums(t *testing.T) {
	d := newDesk(t)
	ctx := context.Background()

	_, err := d.tickets.AddTicket(ctx, service.TicketInput{Title: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, service.ErrInvalidTicket)
	_, err = d.tickets.AddTicket(ctx, service.TicketInput{Title: "x", Category: "question"})
	assert.ErrorIs(t, err, service.ErrInvalidTicket)

	tickets, err := d.tickets.ListTickets(ctx)
	require.NoError(t, err)
	assert.Len(t, tickets, 3)
}

func TestTickets_CanUpdateStatusByRole(t *testing.T) {
	d := newDesk(t)
	ticket := domain.Ticket{}

	assert.False(t, d.tickets.CanUpdateStatus(ticket))

	d.login(t, "customer@helpdesk.com", "customer123")
	assert.False(t, d.tickets.CanUpdateStatus(ticket))

	d.login(t, "technician@helpdesk.com", "technician123")
	assert.True(t, d.tickets.CanUpdateStatus(ticket))

	d.login(t, "admin@helpdesk.com", "admin123")
	assert.True(t, d.tickets.CanUpdateStatus(ticket))
}

func TestTickets_UpdateStatusRequiresPrivilegedSession(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		credential string
		wantErr    error
	}{
		{name: "no session", wantErr: service.ErrNotAuthenticated},
		{name: "customer", email: "customer@helpdesk.com", credential: "customer123", wantErr: service.ErrStatusChangeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDesk(t)
			ctx := context.Background()
			if tt.email != "" {
				d.login(t, tt.email, tt.credential)
			}
			before, err := d.tickets.ListTickets(ctx)
			require.NoError(t, err)

			_, err = d.tickets.UpdateStatus(ctx, before[0].ID, domain.TicketStatusResolved)
			assert.ErrorIs(t, err, tt.wantErr)

			after, err := d.tickets.ListTickets(ctx)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestTickets_UpdateStatusAllowedRoles(t *testing.T) {
	for _, creds := range [][2]string{
		{"admin@helpdesk.com", "admin123"},
		{"technician@helpdesk.com", "technician123"},
	} {
		t.Run(creds[0], func(t *testing.T) {
			d := newDesk(t)
			ctx := context.Background()
			d.login(t, creds[0], creds[1])
			tickets, err := d.tickets.ListTickets(ctx)
			require.NoError(t, err)

			updated, err := d.tickets.UpdateStatus(ctx, tickets[0].ID, domain.TicketStatusInProgress)
			require.NoError(t, err)
			assert.Equal(t, domain.TicketStatusInProgress, updated.Status)

			stored, err := d.tickets.GetTicket(ctx, tickets[0].ID)
			require.NoError(t, err)
			assert.Equal(t, domain.TicketStatusInProgress, stored.Status)
			assert.Equal(t, tickets[0].Title, stored.Title)
		})
	}
}

func TestTickets_ResolvedCanBeReopened(t *testing.T) {
	d := newDesk(t)
	ctx := context.Background()
	d.login(t, "admin@helpdesk.com", "admin123")
	tickets, err := d.tickets.ListTickets(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusResolved, tickets[2].Status)

	updated, err := d.tickets.UpdateStatus(ctx, tickets[2].ID, domain.TicketStatusOpen)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, updated.Status)

	same, err := d.tickets.UpdateStatus(ctx, tickets[2].ID, domain.TicketStatusOpen)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, same.Status)
}

func TestTickets_UpdateStatusRejectsBadInput(t *testing.T) {
	d := newDesk(t)
	ctx := context.Background()
	d.login(t, "technician@helpdesk.com", "technician123")
	tickets, err := d.tickets.ListTickets(ctx)
	require.NoError(t, err)

	_, err = d.tickets.UpdateStatus(ctx, tickets[0].ID, "closed")
	assert.ErrorIs(t, err, service.ErrInvalidStatus)

	_, err = d.tickets.UpdateStatus(ctx, "missing", domain.TicketStatusResolved)
	assert.ErrorIs(t, err, service.ErrTicketNotFound)

	after, err := d.tickets.ListTickets(ctx)
	require.NoError(t, err)
	assert.Equal(t, tickets, after)
}

func TestTickets_AddCommentAppends(t *testing.T) {
	d := newDesk(t)
	ctx := context.Background()
	customer, err := d.directory.Login(ctx, "customer@helpdesk.com", "customer123")
	require.NoError(t, err)
	tickets, err := d.tickets.ListTickets(ctx)
	require.NoError(t, err)
	target := tickets[1]

	first, err := d.tickets.AddComment(ctx, target.ID, "  first  ")
	require.NoError(t, err)
	second, err := d.tickets.AddComment(ctx, target.ID, "second")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	stored, err := d.tickets.GetTicket(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, stored.Comments, 2)
	assert.Equal(t, "first", stored.Comments[0].Content)
	assert.Equal(t, "second", stored.Comments[1].Content)
	assert.Equal(t, customer.ID, stored.Comments[0].AuthorID)
	assert.Equal(t, "Customer", stored.Comments[0].AuthorName)
	assert.Equal(t, target.ID, stored.Comments[0].TicketID)
	assert.Equal(t, fixedNow, stored.Comments[0].CreatedAt)
	assert.Equal(t, target.Status, stored.Status)
}

func TestTickets_AddCommentFailuresLeaveTicketAlone(t *testing.T) {
	d := newDesk(t)
	ctx := context.Background()
	tickets, err := d.tickets.ListTickets(ctx)
	require.NoError(t, err)

	_, err = d.tickets.AddComment(ctx, tickets[0].ID, "hello")
	assert.ErrorIs(t, err, service.ErrNotAuthenticated)

	d.login(t, "customer@helpdesk.com", "customer123")
	_, err = d.tickets.AddComment(ctx, tickets[0].ID, "   ")
	assert.ErrorIs(t, err, service.ErrEmptyComment)

	_, err = d.tickets.AddComment(ctx, "missing", "hello")
	assert.ErrorIs(t, err, service.ErrTicketNotFound)

	after, err := d.tickets.ListTickets(ctx)
	require.NoError(t, err)
	assert.Equal(t, tickets, after)
}

func TestTickets_ReadsAreCopies(t *testing.T) {
	d := newDesk(t)
	ctx := context.Background()
	d.login(t, "admin@helpdesk.com", "admin123")
	tickets, err := d.tickets.ListTickets(ctx)
	require.NoError(t, err)
	_, err = d.tickets.AddComment(ctx, tickets[0].ID, "note")
	require.NoError(t, err)

	snapshot, err := d.tickets.GetTicket(ctx, tickets[0].ID)
	require.NoError(t, err)
	snapshot.Status = domain.TicketStatusResolved
	snapshot.Comments[0].Content = "tampered"

	stored, err := d.tickets.GetTicket(ctx, tickets[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, stored.Status)
	assert.Equal(t, "note", stored.Comments[0].Content)
}

func TestTickets_StatusEventCarriesTransition(t *testing.T) {
	d := newDesk(t)
	ctx := context.Background()
	d.login(t, "technician@helpdesk.com", "technician123")
	tickets, err := d.tickets.ListTickets(ctx)
	require.NoError(t, err)

	_, err = d.tickets.UpdateStatus(ctx, tickets[0].ID, domain.TicketStatusResolved)
	require.NoError(t, err)

	d.events.mu.Lock()
	defer d.events.mu.Unlock()
	last := d.events.events[len(d.events.events)-1]
	require.Equal(t, events.EventTicketStatusChanged, last.Type)
	payload, ok := last.Payload.(events.TicketStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.TicketStatusOpen, payload.OldStatus)
	assert.Equal(t, domain.TicketStatusResolved, payload.NewStatus)
	assert.Equal(t, tickets[0].ID, last.TicketID)
	assert.Equal(t, fixedNow, last.Timestamp)
}
