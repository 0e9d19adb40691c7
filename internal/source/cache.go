package source

import (
	"context"

	"github.com/yiblet/dash/internal/post"
	"github.com/yiblet/dash/internal/store"
)

// StoreSource loads the snapshot last written by a sync.
type StoreSource struct {
	Posts store.PostStore
}

// NewStoreSource creates a source reading from posts.
func NewStoreSource(posts store.PostStore) *StoreSource {
	return &StoreSource{Posts: posts}
}

// Load returns the cached snapshot. An empty cache is a failure, since an
// empty list would be indistinguishable from a real load with no posts.
func (s *StoreSource) Load(ctx context.Context) ([]post.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadFailure{Kind: KindCache, Reason: "load cancelled", Err: err}
	}

	posts, err := s.Posts.List()
	if err != nil {
		return nil, &LoadFailure{Kind: KindCache, Reason: "failed to read cached posts", Err: err}
	}
	if len(posts) == 0 {
		return nil, &LoadFailure{Kind: KindCache, Reason: "no cached posts; run `dash sync` first"}
	}
	return posts, nil
}
