package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sbilibin2017/user-crud/internal/database/databasetest"
	"github.com/sbilibin2017/user-crud/internal/repositories"
	"github.com/sbilibin2017/user-crud/internal/unitofwork"
	"github.com/sbilibin2017/user-crud/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_MySQL(t *testing.T) {
	db, teardown := databasetest.StartMySQL(t)
	defer teardown()

	svc := NewUserService(
		unitofwork.New(db),
		repositories.NewUserReadRepository(db, unitofwork.GetTxFromContext),
		repositories.NewUserWriteRepository(db, unitofwork.GetTxFromContext),
	)
	ctx := context.Background()

	t.Run("CreatedUserIsNormalized", func(t *testing.T) {
		in, errs := validation.ValidateUser("  Grace Hopper ", " Grace@Navy.MIL ")
		require.Nil(t, errs)

		user, err := svc.Create(ctx, in)
		require.NoError(t, err)

		got, err := svc.Get(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Grace Hopper", got.Name)
		assert.Equal(t, "grace@navy.mil", got.Email)
		assert.NotZero(t, got.ID)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("EmailsDifferingOnlyInCaseAreDuplicates", func(t *testing.T) {
		first, _ := validation.ValidateUser("Upper", "A@x.com")
		second, _ := validation.ValidateUser("Lower", "a@x.com")

		_, err := svc.Create(ctx, first)
		require.NoError(t, err)

		_, err = svc.Create(ctx, second)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("EditRules", func(t *testing.T) {
		one, _ := validation.ValidateUser("One", "one@example.com")
		two, _ := validation.ValidateUser("Two", "two@example.com")
		u1, err := svc.Create(ctx, one)
		require.NoError(t, err)
		_, err = svc.Create(ctx, two)
		require.NoError(t, err)

		steal, _ := validation.ValidateUser("One", "two@example.com")
		assert.ErrorIs(t, svc.Update(ctx, u1.ID, steal), ErrEmailTaken)

		keep, _ := validation.ValidateUser("One Renamed", "one@example.com")
		require.NoError(t, svc.Update(ctx, u1.ID, keep))

		got, err := svc.Get(ctx, u1.ID)
		require.NoError(t, err)
		assert.Equal(t, "One Renamed", got.Name)
	})

	t.Run("DeleteThenGetIsNotFound", func(t *testing.T) {
		in, _ := validation.ValidateUser("Doomed", "doomed@example.com")
		user, err := svc.Create(ctx, in)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, user.ID))

		_, err = svc.Get(ctx, user.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, user.ID), ErrUserNotFound)
	})

	t.Run("ConcurrentCreatesWithSameEmail", func(t *testing.T) {
		const workers = 8
		in, _ := validation.ValidateUser("Racer", "Race@Example.com")

		var wg sync.WaitGroup
		errs := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Create(ctx, in)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		succeeded := 0
		for err := range errs {
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrUnexpected):
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, succeeded)

		var rows int
		require.NoError(t, db.GetContext(ctx, &rows, `SELECT COUNT(*) FROM users WHERE email = ?`, "race@example.com"))
		assert.Equal(t, 1, rows)
	})
}
