// Package source loads the full post list for the dashboard. A load either
// yields a complete list or fails with a *LoadFailure; retrying belongs here
// and never in the view model.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/yiblet/dash/internal/post"
)

// Source produces the complete post list in one operation.
type Source interface {
	Load(ctx context.Context) ([]post.Post, error)
}

// Kind classifies why a load failed.
type Kind string

const (
	KindNetwork Kind = "network" // transport error or timeout
	KindStatus  Kind = "status"  // non-2xx response
	KindDecode  Kind = "decode"  // malformed payload
	KindCache   Kind = "cache"   // cached snapshot unavailable
)

// LoadFailure reports that a source could not produce a list.
type LoadFailure struct {
	Kind   Kind
	Reason string
	Err    error
}

func (f *LoadFailure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Reason, f.Err)
	}
	return f.Reason
}

func (f *LoadFailure) Unwrap() error {
	return f.Err
}

// IsLoadFailure reports whether err is or wraps a *LoadFailure.
func IsLoadFailure(err error) bool {
	var failure *LoadFailure
	return errors.As(err, &failure)
}

// AsLoadFailure returns err as a *LoadFailure, classifying anything else as
// a network failure.
func AsLoadFailure(err error) *LoadFailure {
	if err == nil {
		return nil
	}
	var failure *LoadFailure
	if errors.As(err, &failure) {
		return failure
	}
	return &LoadFailure{Kind: KindNetwork, Reason: "load failed", Err: err}
}

// FuncSource adapts a function to Source.
type FuncSource func(ctx context.Context) ([]post.Post, error)

func (f FuncSource) Load(ctx context.Context) ([]post.Post, error) {
	return f(ctx)
}

// StaticSource always returns a copy of the same posts.
type StaticSource []post.Post

func (s StaticSource) Load(ctx context.Context) ([]post.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadFailure{Kind: KindNetwork, Reason: "load cancelled", Err: err}
	}
	out := make([]post.Post, len(s))
	copy(out, s)
	return out, nil
}
