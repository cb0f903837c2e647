package userdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// List is a JSON array of T stored under one key. Read problems degrade to
// an empty list and write problems are logged; neither reaches the caller
// of Load.
type List[T any] struct {
	store  Store
	mirror Mirror
	key    string
}

func NewList[T any](store Store, mirror Mirror, key string) *List[T] {
	return &List[T]{store: store, mirror: mirror, key: key}
}

func (l *List[T]) Key() string { return l.key }

func (l *List[T]) Load(ctx context.Context, userID string) []T {
	return l.LoadOr(ctx, userID, nil)
}

// LoadOr is Load with a different default for users with nothing stored or
// an unreadable list.
func (l *List[T]) LoadOr(ctx context.Context, userID string, fallback []T) []T {
	raw, err := l.store.Get(ctx, userID, l.key)
	if err != nil {
		if !errors.Is(err, ErrNoData) {
			log.Printf("[userdata] load %s for %s error: %v", l.key, userID, err)
		}
		return clone(fallback)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("[userdata] decode %s for %s error: %v", l.key, userID, err)
		return clone(fallback)
	}
	if items == nil {
		return []T{}
	}
	return items
}

// LoadForUpdate is LoadOr for read-modify-write callers. A store that
// fails to read returns an error wrapping ErrUnavailable instead of the
// fallback, so the caller never overwrites data it could not see. Missing
// and undecodable lists still yield the fallback.
func (l *List[T]) LoadForUpdate(ctx context.Context, userID string, fallback []T) ([]T, error) {
	raw, err := l.store.Get(ctx, userID, l.key)
	if errors.Is(err, ErrNoData) {
		return clone(fallback), nil
	}
	if err != nil {
		log.Printf("[userdata] load %s for %s before update error: %v", l.key, userID, err)
		return nil, fmt.Errorf("load %s: %w: %w", l.key, ErrUnavailable, err)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("[userdata] decode %s for %s error, rewriting: %v", l.key, userID, err)
		return clone(fallback), nil
	}
	if items == nil {
		return []T{}, nil
	}
	return items, nil
}

// Save writes items and hands them to the mirror. The error is logged here;
// callers may ignore it.
func (l *List[T]) Save(ctx context.Context, userID string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		log.Printf("[userdata] encode %s for %s error: %v", l.key, userID, err)
		return fmt.Errorf("encode %s: %w", l.key, err)
	}
	if err := l.store.Put(ctx, userID, l.key, raw); err != nil {
		log.Printf("[userdata] save %s for %s error: %v", l.key, userID, err)
		return err
	}
	if l.mirror != nil {
		l.mirror.Publish(userID, l.key, raw)
	}
	return nil
}

func clone[T any](items []T) []T {
	return append([]T{}, items...)
}
