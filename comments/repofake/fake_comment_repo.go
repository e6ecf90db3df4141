// Package fakecommentrepo provides an in-memory comments.Repo used by tests
// and by the server when no database is configured.
package fakecommentrepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reelnotes/reelnotes/comments"
)

var _ comments.Repo = (*FakeCommentRepo)(nil)

type FakeCommentRepo struct {
	byMovie map[int64][]*comments.Comment
	lock    sync.RWMutex
}

func NewFakeCommentRepo() *FakeCommentRepo {
	return &FakeCommentRepo{
		byMovie: make(map[int64][]*comments.Comment),
	}
}

func (cr *FakeCommentRepo) Create(_ context.Context, comment *comments.Comment) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	comment.ID = uuid.New().String()
	if comment.PostedAt.IsZero() {
		comment.PostedAt = time.Now()
	}

	stored := *comment
	cr.byMovie[comment.MovieID] = append(cr.byMovie[comment.MovieID], &stored)
	return nil
}

func (cr *FakeCommentRepo) ListByMovie(_ context.Context, movieID int64) ([]*comments.Comment, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	list := make([]*comments.Comment, 0, len(cr.byMovie[movieID]))
	for _, c := range cr.byMovie[movieID] {
		copied := *c
		list = append(list, &copied)
	}
	return list, nil
}
