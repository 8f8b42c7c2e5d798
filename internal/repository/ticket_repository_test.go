package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
)

func ticket(id string) domain.Ticket {
	return domain.Ticket{ID: id, Title: id, Status: domain.TicketStatusOpen, Comments: []domain.Comment{}}
}

func TestTicketRepository_PrependPutsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTicketRepository()
	require.NoError(t, repo.Append(ctx, ticket("seed-1")))
	require.NoError(t, repo.Append(ctx, ticket("seed-2")))
	require.NoError(t, repo.Prepend(ctx, ticket("new")))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	ids := []string{list[0].ID, list[1].ID, list[2].ID}
	assert.Equal(t, []string{"new", "seed-1", "seed-2"}, ids)
}

func TestTicketRepository_ReadsDoNotAliasComments(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTicketRepository()
	seed := ticket("t1")
	seed.Comments = []domain.Comment{{ID: "c1", Content: "first"}}
	require.NoError(t, repo.Append(ctx, seed))

	seed.Comments[0].Content = "changed by caller"

	got, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	got.Comments[0].Content = "changed again"

	again, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "first", again.Comments[0].Content)
}

func TestTicketRepository_UpdateIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTicketRepository()
	require.NoError(t, repo.Append(ctx, ticket("t1")))

	refused := errors.New("refused")
	_, err := repo.Update(ctx, "t1", func(tk *domain.Ticket) error {
		tk.Status = domain.TicketStatusResolved
		return refused
	})
	assert.ErrorIs(t, err, refused)

	got, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, got.Status)

	updated, err := repo.Update(ctx, "t1", func(tk *domain.Ticket) error {
		tk.Status = domain.TicketStatusInProgress
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, updated.Status)

	_, err = repo.Update(ctx, "missing", func(*domain.Ticket) error { return nil })
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
