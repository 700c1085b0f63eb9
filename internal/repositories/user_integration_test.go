package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/sbilibin2017/user-crud/internal/database"
	"github.com/sbilibin2017/user-crud/internal/database/databasetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositories_MySQL(t *testing.T) {
	db, teardown := databasetest.StartMySQL(t)
	defer teardown()

	ctx := context.Background()
	readRepo := NewUserReadRepository(db, nil)
	writeRepo := NewUserWriteRepository(db, nil)

	t.Run("CreateAndGet", func(t *testing.T) {
		id, err := writeRepo.Create(ctx, "Alice", "alice@example.com")
		require.NoError(t, err)

		user, err := readRepo.GetByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.False(t, user.CreatedAt.IsZero())

		byEmail, err := readRepo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, id, byEmail.ID)
	})

	t.Run("DuplicateEmailViolatesConstraint", func(t *testing.T) {
		_, err := writeRepo.Create(ctx, "Other Alice", "alice@example.com")
		assert.True(t, database.IsDuplicateKey(err), "got %v", err)
	})

	t.Run("DeletedIDIsNotReused", func(t *testing.T) {
		id, err := writeRepo.Create(ctx, "Temp", "temp@example.com")
		require.NoError(t, err)
		require.NoError(t, writeRepo.Delete(ctx, id))

		gone, err := readRepo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, gone)

		next, err := writeRepo.Create(ctx, "Temp", "temp@example.com")
		require.NoError(t, err)
		assert.Greater(t, next, id)
	})

	t.Run("SearchAndPaginate", func(t *testing.T) {
		for i := 1; i <= 25; i++ {
			_, err := writeRepo.Create(ctx, fmt.Sprintf("Paged %02d", i), fmt.Sprintf("paged%02d@example.com", i))
			require.NoError(t, err)
		}

		total, err := readRepo.Count(ctx, "PAGED")
		require.NoError(t, err)
		assert.Equal(t, 25, total)

		first, err := readRepo.List(ctx, "paged", 10, 0)
		require.NoError(t, err)
		require.Len(t, first, 10)
		assert.Equal(t, "Paged 25", first[0].Name)

		last, err := readRepo.List(ctx, "paged", 10, 20)
		require.NoError(t, err)
		require.Len(t, last, 5)
		assert.Equal(t, "Paged 01", last[4].Name)

		none, err := readRepo.Count(ctx, "xyz")
		require.NoError(t, err)
		assert.Zero(t, none)
	})
}
