package repositories

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "name", "email", "created_at"}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestUserReadRepository_Count(t *testing.T) {
	tests := []struct {
		name  string
		q     string
		query string
		args  []driver.Value
	}{
		{
			name:  "unfiltered",
			q:     "",
			query: `SELECT COUNT(*) FROM users`,
		},
		{
			name:  "filtered and lowercased",
			q:     " ALI ",
			query: `SELECT COUNT(*) FROM users WHERE LOWER(name) LIKE ? OR LOWER(email) LIKE ?`,
			args:  []driver.Value{"%ali%", "%ali%"},
		},
		{
			name:  "wildcards escaped",
			q:     `50%_off\`,
			query: `SELECT COUNT(*) FROM users WHERE LOWER(name) LIKE ? OR LOWER(email) LIKE ?`,
			args:  []driver.Value{`%50\%\_off\\%`, `%50\%\_off\\%`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)

			exp := mock.ExpectQuery("^" + regexp.QuoteMeta(tt.query) + "$")
			if len(tt.args) > 0 {
				exp = exp.WithArgs(tt.args...)
			}
			exp.WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(7))

			repo := NewUserReadRepository(db, nil)
			total, err := repo.Count(context.Background(), tt.q)

			assert.NoError(t, err)
			assert.Equal(t, 7, total)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserReadRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE LOWER(name) LIKE ? OR LOWER(email) LIKE ? ORDER BY id DESC LIMIT ? OFFSET ?`)).
		WithArgs("%x%", "%x%", 10, 20).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(int64(5), "Xena", "xena@example.com", now).
			AddRow(int64(3), "Max", "max@example.com", now))

	repo := NewUserReadRepository(db, nil)
	users, err := repo.List(context.Background(), "x", 10, 20)

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(5), users[0].ID)
	assert.Equal(t, "xena@example.com", users[0].Email)
	assert.Equal(t, now, users[1].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserReadRepository_List_Empty(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users ORDER BY id DESC LIMIT ? OFFSET ?`)).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(userColumns))

	users, err := NewUserReadRepository(db, nil).List(context.Background(), "", 10, 0)

	assert.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserReadRepository_List_Error(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM users`).WillReturnError(errors.New("connection refused"))

	users, err := NewUserReadRepository(db, nil).List(context.Background(), "", 10, 0)

	assert.Error(t, err)
	assert.Nil(t, users)
}

func TestUserReadRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db, nil)
	now := time.Now().UTC()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = ?`)).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(int64(1), "Alice", "alice@example.com", now))

		user, err := repo.GetByID(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "Alice", user.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = ?`)).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows(userColumns))

		user, err := repo.GetByID(context.Background(), 2)
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = ?`)).
			WithArgs(int64(3)).
			WillReturnError(errors.New("bad connection"))

		user, err := repo.GetByID(context.Background(), 3)
		assert.Error(t, err)
		assert.Nil(t, user)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserReadRepository_GetByEmail(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = ? LIMIT 1`)).
		WithArgs("bob@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(int64(9), "Bob", "bob@example.com", time.Now()))

	user, err := NewUserReadRepository(db, nil).GetByEmail(context.Background(), "bob@example.com")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(9), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (name, email) VALUES (?, ?)`)).
		WithArgs("Alice", "alice@example.com").
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := NewUserWriteRepository(db, nil).Create(context.Background(), "Alice", "alice@example.com")

	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Create_Error(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO users`).WillReturnError(errors.New("duplicate"))

	id, err := NewUserWriteRepository(db, nil).Create(context.Background(), "Alice", "alice@example.com")

	assert.Error(t, err)
	assert.Zero(t, id)
}

func TestUserWriteRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET name = ?, email = ? WHERE id = ?`)).
		WithArgs("Alicia", "alicia@example.com", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewUserWriteRepository(db, nil).Update(context.Background(), 1, "Alicia", "alicia@example.com")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = ?`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewUserWriteRepository(db, nil).Delete(context.Background(), 4)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_UsesContextTransaction(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM users`).WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, tx)
	getter := func(ctx context.Context) *sqlx.Tx {
		tx, _ := ctx.Value(key{}).(*sqlx.Tx)
		return tx
	}

	require.NoError(t, NewUserWriteRepository(db, getter).Delete(ctx, 4))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
