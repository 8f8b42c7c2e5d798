package repository_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
)

func record(id, email string) repository.AccountRecord {
	return repository.AccountRecord{
		Account:        domain.Account{ID: id, Name: id, Email: email, Role: domain.RoleCustomer, Active: true},
		CredentialHash: "hash-" + id,
	}
}

func TestAccountRepository_KeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewAccountRepository()

	require.NoError(t, repo.Append(ctx, record("a", "a@x")))
	require.NoError(t, repo.Append(ctx, record("b", "b@x")))
	require.NoError(t, repo.Append(ctx, record("c", "c@x")))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].Account.ID)
	assert.Equal(t, "b", list[1].Account.ID)
	assert.Equal(t, "c", list[2].Account.ID)
}

func TestAccountRepository_ListIsACopy(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewAccountRepository()
	require.NoError(t, repo.Append(ctx, record("a", "a@x")))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	list[0].Account.Name = "mutated"

	stored, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", stored.Account.Name)
}

func TestAccountRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewAccountRepository()
	require.NoError(t, repo.Append(ctx, record("a", "a@x")))
	require.NoError(t, repo.Append(ctx, record("b", "b@x")))

	updated, err := repo.Update(ctx, "a", func(r *repository.AccountRecord) error {
		r.Account.Email = "new@x"
		r.Account.ID = "hijacked"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "a", updated.Account.ID)
	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "new@x", got.Account.Email)

	removed, err := repo.Delete(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "new@x", removed.Account.Email)
	_, err = repo.GetByID(ctx, "a")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].Account.ID)
}

func TestAccountRepository_FailedUpdateLeavesRecord(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewAccountRepository()
	require.NoError(t, repo.Append(ctx, record("a", "a@x")))

	boom := errors.New("rejected")
	_, err := repo.Update(ctx, "a", func(r *repository.AccountRecord) error {
		r.Account.Name = "changed"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Account.Name)
}

func TestAccountRepository_ConcurrentUpdatesAllApply(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewAccountRepository()
	require.NoError(t, repo.Append(ctx, record("a", "a@x")))

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, "a", func(r *repository.AccountRecord) error {
				r.Account.Name += "+"
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a"+strings.Repeat("+", writers), got.Account.Name)
}

func TestAccountRepository_UnknownIDs(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewAccountRepository()
	require.NoError(t, repo.Append(ctx, record("a", "a@x")))

	_, err := repo.Update(ctx, "zzz", func(*repository.AccountRecord) error { return nil })
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.Delete(ctx, "zzz")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
