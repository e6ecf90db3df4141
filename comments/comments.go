// Package comments defines the per-movie comment record and its repository
// contract. Author fields are a denormalized snapshot of the commenting
// user's token claims.
package comments

import "time"

type Comment struct {
	ID       string    `json:"id,omitempty"`
	Title    string    `json:"title"`
	Body     string    `json:"comment"`
	PostedAt time.Time `json:"date"`
	UserID   string    `json:"userId"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	MovieID  int64     `json:"movieId"`
}
