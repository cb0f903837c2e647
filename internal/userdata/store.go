package userdata

import (
	"context"
	"errors"
)

// Keys of the per-user lists.
const (
	KeyBookmarks         = "bookmarks"
	KeyNotes             = "notes"
	KeyTodos             = "todos"
	KeyExamHistory       = "examHistory"
	KeyRegisteredCourses = "registeredCourses"
	KeyCommunityPosts    = "communityPosts"
)

// ErrNoData is returned by a Store when nothing was ever written under a key.
var ErrNoData = errors.New("no data")

// ErrUnavailable marks a read that failed for a reason other than missing
// data. Updates abort on it.
var ErrUnavailable = errors.New("storage unavailable")

//go:generate mockgen -source=store.go -destination=../mocks/userdata/mock_store.go -package=mock_userdata

// Store persists one JSON document per (user, key). Writes are
// last-write-wins.
type Store interface {
	Get(ctx context.Context, userID, key string) ([]byte, error)
	Put(ctx context.Context, userID, key string, value []byte) error
}

// Mirror receives a copy of every successful write.
type Mirror interface {
	Publish(userID, key string, value []byte)
}
