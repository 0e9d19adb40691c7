// Package memstore provides an in-memory implementation of the store interfaces.
// It backs unit tests and the demo command, and does not persist data.
package memstore

import (
	"fmt"
	"sync"
	"time"

	"github.com/yiblet/dash/internal/post"
	"github.com/yiblet/dash/internal/store"
)

// MemoryStore is an in-memory implementation of store.Store.
// It is safe for concurrent use; data lives only for the lifetime of the process.
type MemoryStore struct {
	posts  *memoryPostStore
	config *memoryConfigStore
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		posts:  newMemoryPostStore(time.Now),
		config: newMemoryConfigStore(),
	}
}

// Posts returns the post store.
func (m *MemoryStore) Posts() store.PostStore {
	return m.posts
}

// Config returns the config store.
func (m *MemoryStore) Config() store.ConfigStore {
	return m.config
}

// Close releases resources (no-op for memory store).
func (m *MemoryStore) Close() error {
	return nil
}

// memoryPostStore implements store.PostStore with a slice snapshot.
type memoryPostStore struct {
	mu       sync.RWMutex
	posts    []post.Post
	syncedAt time.Time
	now      func() time.Time
}

func newMemoryPostStore(now func() time.Time) *memoryPostStore {
	return &memoryPostStore{now: now}
}

// ReplaceAll stores a private copy of posts as the new snapshot.
func (m *memoryPostStore) ReplaceAll(posts []post.Post) error {
	snapshot := make([]post.Post, len(posts))
	copy(snapshot, posts)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.posts = snapshot
	m.syncedAt = m.now().UTC()
	if len(snapshot) == 0 {
		m.syncedAt = time.Time{}
	}
	return nil
}

// List returns a copy of the snapshot in load order.
func (m *memoryPostStore) List() ([]post.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]post.Post, len(m.posts))
	copy(result, m.posts)
	return result, nil
}

// Get returns the first post with the given ID.
func (m *memoryPostStore) Get(id int) (post.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return post.Post{}, fmt.Errorf("post %d: %w", id, store.ErrNotFound)
}

// Count returns the snapshot size.
func (m *memoryPostStore) Count() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.posts), nil
}

// LastSync returns when the snapshot was stored.
func (m *memoryPostStore) LastSync() (time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.syncedAt, nil
}

// Clear drops the snapshot.
func (m *memoryPostStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.posts = nil
	m.syncedAt = time.Time{}
	return nil
}

// Close releases resources (no-op for memory store).
func (m *memoryPostStore) Close() error {
	return nil
}

// memoryConfigStore implements store.ConfigStore using an in-memory map.
type memoryConfigStore struct {
	mu     sync.RWMutex
	config map[string]string
}

// newMemoryConfigStore creates a new in-memory config store.
func newMemoryConfigStore() *memoryConfigStore {
	return &memoryConfigStore{
		config: make(map[string]string),
	}
}

// Get retrieves a configuration value by key.
func (m *memoryConfigStore) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.config[key]
	if !exists {
		return "", fmt.Errorf("config key %s: %w", key, store.ErrNotFound)
	}

	return value, nil
}

// Set stores a configuration value.
func (m *memoryConfigStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.config[key] = value
	return nil
}

// List returns a copy of all configuration key-value pairs.
func (m *memoryConfigStore) List() (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return copy to prevent external modification
	result := make(map[string]string, len(m.config))
	for k, v := range m.config {
		result[k] = v
	}

	return result, nil
}

// Delete removes a configuration key.
func (m *memoryConfigStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.config[key]; !exists {
		return fmt.Errorf("config key %s: %w", key, store.ErrNotFound)
	}

	delete(m.config, key)
	return nil
}

// Close releases resources (no-op for memory store).
func (m *memoryConfigStore) Close() error {
	return nil
}
