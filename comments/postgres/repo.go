// Package postgres implements comments.Repo on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/reelnotes/reelnotes/comments"
)

var _ comments.Repo = (*Repo)(nil)

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, comment *comments.Comment) error {
	query := `INSERT INTO comments (id, title, body, posted_at, user_id, name, email, movie_id)
	          VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		comment.Title, comment.Body, comment.PostedAt,
		comment.UserID, comment.Name, comment.Email, comment.MovieID,
	).Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *Repo) ListByMovie(ctx context.Context, movieID int64) ([]*comments.Comment, error) {
	query := `SELECT id, title, body, posted_at, user_id, name, email, movie_id
	          FROM comments
	          WHERE movie_id = $1
	          ORDER BY posted_at`

	rows, err := r.db.QueryContext(ctx, query, movieID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := make([]*comments.Comment, 0)
	for rows.Next() {
		c := &comments.Comment{}
		if err := rows.Scan(&c.ID, &c.Title, &c.Body, &c.PostedAt,
			&c.UserID, &c.Name, &c.Email, &c.MovieID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}
