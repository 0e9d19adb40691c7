// Package feed orchestrates loading posts from a source and keeping the local
// cache in step with it.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/yiblet/dash/internal/logging"
	"github.com/yiblet/dash/internal/post"
	"github.com/yiblet/dash/internal/source"
	"github.com/yiblet/dash/internal/store"
)

// Stats summarizes the cached snapshot.
type Stats struct {
	Count    int
	LastSync time.Time // zero when nothing has been synced
}

// Manager loads posts from a source and writes successful loads through to
// the post cache.
type Manager struct {
	source       source.Source
	posts        store.PostStore
	writeThrough bool
}

// NewManager creates a manager over src. posts may be nil to run without a
// cache. Loads from the cache itself are never written back.
func NewManager(src source.Source, posts store.PostStore) *Manager {
	_, fromCache := src.(*source.StoreSource)
	return &Manager{
		source:       src,
		posts:        posts,
		writeThrough: posts != nil && !fromCache,
	}
}

// Load fetches the complete list. A failure is returned as a
// *source.LoadFailure and leaves the cache untouched. A cache write after a
// successful load is best effort.
func (m *Manager) Load(ctx context.Context) ([]post.Post, error) {
	posts, err := m.source.Load(ctx)
	if err != nil {
		failure := source.AsLoadFailure(err)
		logging.Error(fmt.Errorf("load posts: %w", failure))
		return nil, failure
	}

	logging.Trace("feed.load", map[string]int{"count": len(posts)})

	if m.writeThrough {
		if err := m.posts.ReplaceAll(posts); err != nil {
			logging.Error(fmt.Errorf("failed to cache posts: %w", err))
		}
	}
	return posts, nil
}

// Sync loads from the source and replaces the cache, returning the number
// of posts stored.
func (m *Manager) Sync(ctx context.Context) (int, error) {
	if m.posts == nil {
		return 0, fmt.Errorf("no post cache configured")
	}

	posts, err := m.source.Load(ctx)
	if err != nil {
		return 0, source.AsLoadFailure(err)
	}
	if err := m.posts.ReplaceAll(posts); err != nil {
		return 0, fmt.Errorf("failed to cache posts: %w", err)
	}

	logging.Infof("synced %d posts", len(posts))
	return len(posts), nil
}

// Cached returns the cached snapshot in load order.
func (m *Manager) Cached() ([]post.Post, error) {
	if m.posts == nil {
		return nil, nil
	}
	return m.posts.List()
}

// Get returns one cached post. A post missing from the cache, or a manager
// without one, is reported as store.ErrNotFound.
func (m *Manager) Get(id int) (post.Post, error) {
	if m.posts == nil {
		return post.Post{}, fmt.Errorf("post %d: %w", id, store.ErrNotFound)
	}
	return m.posts.Get(id)
}

// Stats reports the size and age of the cache.
func (m *Manager) Stats() (Stats, error) {
	if m.posts == nil {
		return Stats{}, nil
	}

	count, err := m.posts.Count()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count cached posts: %w", err)
	}
	last, err := m.posts.LastSync()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read last sync: %w", err)
	}
	return Stats{Count: count, LastSync: last}, nil
}

// Clear drops the cached snapshot.
func (m *Manager) Clear() error {
	if m.posts == nil {
		return nil
	}
	return m.posts.Clear()
}
