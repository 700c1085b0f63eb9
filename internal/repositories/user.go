package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/user-crud/internal/logger"
	"github.com/sbilibin2017/user-crud/internal/models"
)

// TxGetter returns the transaction bound to ctx, or nil.
type TxGetter func(ctx context.Context) *sqlx.Tx

// likeEscaper escapes LIKE wildcards with MySQL's default escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// executor picks the transaction from ctx when there is one.
func executor(ctx context.Context, db *sqlx.DB, txGetter TxGetter) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

// searchFilter builds the WHERE clause matching q against name or email.
func searchFilter(q string) (string, []any) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", nil
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
	return " WHERE LOWER(name) LIKE ? OR LOWER(email) LIKE ?", []any{pattern, pattern}
}

func logQuery(query string, args []any, result any, err error) {
	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}

// UserReadRepository reads rows from the users table
type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// Count returns the number of users matching q. An empty q matches everyone.
func (r *UserReadRepository) Count(ctx context.Context, q string) (int, error) {
	where, args := searchFilter(q)
	query := `SELECT COUNT(*) FROM users` + where

	var total int
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &total, query, args...)
	logQuery(query, args, total, err)

	return total, err
}

// List returns one window of users matching q, newest id first.
func (r *UserReadRepository) List(ctx context.Context, q string, limit, offset int) ([]models.User, error) {
	where, args := searchFilter(q)
	query := `
		SELECT id, name, email, created_at
		FROM users` + where + `
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`
	args = append(args, limit, offset)

	users := []models.User{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &users, query, args...)
	logQuery(query, args, len(users), err)

	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID returns the user with the given id, or nil when there is none.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	const query = `
		SELECT id, name, email, created_at
		FROM users
		WHERE id = ?
	`
	return r.getOne(ctx, query, id)
}

// GetByEmail returns the user owning email, or nil when there is none.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `
		SELECT id, name, email, created_at
		FROM users
		WHERE email = ?
		LIMIT 1
	`
	return r.getOne(ctx, query, email)
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, arg)
	logQuery(query, []any{arg}, user.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserWriteRepository mutates rows of the users table
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts a user and returns its new id.
func (r *UserWriteRepository) Create(ctx context.Context, name, email string) (int64, error) {
	const query = `INSERT INTO users (name, email) VALUES (?, ?)`
	args := []any{name, email}

	var id int64
	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	if err == nil {
		id, err = res.LastInsertId()
	}
	logQuery(query, args, id, err)

	return id, err
}

// Update overwrites name and email of the user with the given id.
func (r *UserWriteRepository) Update(ctx context.Context, id int64, name, email string) error {
	const query = `UPDATE users SET name = ?, email = ? WHERE id = ?`
	args := []any{name, email, id}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	logQuery(query, args, rowsAffected(res), err)

	return err
}

// Delete removes the user with the given id.
func (r *UserWriteRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM users WHERE id = ?`
	args := []any{id}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	logQuery(query, args, rowsAffected(res), err)

	return err
}

func rowsAffected(res sql.Result) int64 {
	if res == nil {
		return 0
	}
	n, _ := res.RowsAffected()
	return n
}
