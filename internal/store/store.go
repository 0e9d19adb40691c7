// Package store defines the storage interfaces for dash's persistence layer.
// It covers the cached post snapshot written by sync and the key-value store
// that holds runtime state such as the session token and the chosen theme.
package store

import (
	"errors"
	"time"

	"github.com/yiblet/dash/internal/post"
)

// ErrNotFound is returned when a post or config key does not exist.
var ErrNotFound = errors.New("not found")

// PostStore manages the cached post snapshot.
// The snapshot is always replaced as a whole, never merged.
type PostStore interface {
	// ReplaceAll swaps the cached snapshot for posts, keeping their order.
	// Either every post is stored or the previous snapshot is left intact.
	ReplaceAll(posts []post.Post) error

	// List returns the snapshot in the order it was stored.
	List() ([]post.Post, error)

	// Get retrieves a single post by ID.
	Get(id int) (post.Post, error)

	// Count returns the number of cached posts.
	Count() (int, error)

	// LastSync returns when the snapshot was stored, or the zero time.
	LastSync() (time.Time, error)

	// Clear removes the snapshot.
	Clear() error

	// Close releases any resources.
	Close() error
}

// ConfigStore manages runtime key-value state.
type ConfigStore interface {
	// Get retrieves a value by key.
	// Returns an error wrapping ErrNotFound if the key does not exist.
	Get(key string) (string, error)

	// Set stores a value, replacing any existing one.
	Set(key, value string) error

	// List returns all key-value pairs.
	List() (map[string]string, error)

	// Delete removes a key.
	// Returns an error wrapping ErrNotFound if the key does not exist.
	Delete(key string) error

	// Close releases any resources.
	Close() error
}

// Store combines the post and config stores and manages their lifecycle
// as a single unit.
type Store interface {
	Posts() PostStore
	Config() ConfigStore
	Close() error
}
