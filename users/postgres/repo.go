// Package postgres implements users.Repo on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/reelnotes/reelnotes/users"
)

var _ users.Repo = (*Repo)(nil)

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create relies on the UNIQUE constraint on users.email for atomicity:
// concurrent inserts with the same email race inside the database and
// exactly one wins.
func (r *Repo) Create(ctx context.Context, user *users.User) error {
	query := `INSERT INTO users (id, name, email, password_hash)
	          VALUES (gen_random_uuid(), $1, $2, $3)
	          RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, user.Name, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return users.ErrDuplicateEmail
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	query := `SELECT id, name, email, password_hash, created_at FROM users
	          WHERE email = $1`

	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *Repo) GetByID(ctx context.Context, id string) (*users.User, error) {
	query := `SELECT id, name, email, password_hash, created_at FROM users
	          WHERE id = $1`

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *Repo) scanUser(row *sql.Row) (*users.User, error) {
	user := &users.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, users.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}
