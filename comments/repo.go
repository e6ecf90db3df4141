package comments

import "context"

type Repo interface {
	// Create stores a new comment and assigns its ID.
	Create(ctx context.Context, comment *Comment) error

	// ListByMovie returns all comments for a movie, oldest first.
	ListByMovie(ctx context.Context, movieID int64) ([]*Comment, error)
}
