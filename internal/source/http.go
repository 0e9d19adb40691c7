package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/yiblet/dash/internal/post"
)

const (
	// DefaultURL is the public demo API the dashboard reads from.
	DefaultURL = "https://jsonplaceholder.typicode.com/posts"

	DefaultTimeout = 10 * time.Second
	DefaultRetries = 2
)

// HTTPSource loads posts with a GET request against a JSON endpoint.
type HTTPSource struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration // per attempt
	Retries int           // extra attempts after the first

	// NewBackOff overrides the retry schedule. Defaults to exponential.
	NewBackOff func() backoff.BackOff
}

// NewHTTPSource creates a source for url with default timeout and retries.
func NewHTTPSource(url string) *HTTPSource {
	if url == "" {
		url = DefaultURL
	}
	return &HTTPSource{
		URL:     url,
		Client:  http.DefaultClient,
		Timeout: DefaultTimeout,
		Retries: DefaultRetries,
	}
}

// Load fetches the post list. Transport errors and 5xx responses are retried;
// client errors and malformed payloads fail immediately.
func (s *HTTPSource) Load(ctx context.Context) ([]post.Post, error) {
	b := s.backOff()

	posts, err := backoff.Retry(ctx, func() ([]post.Post, error) {
		posts, err := s.fetch(ctx)
		if err != nil && !retryable(err) {
			return nil, backoff.Permanent(err)
		}
		return posts, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(max(s.Retries, 0)+1)))
	if err != nil {
		return nil, AsLoadFailure(err)
	}
	return posts, nil
}

func (s *HTTPSource) backOff() backoff.BackOff {
	if s.NewBackOff != nil {
		return s.NewBackOff()
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	return b
}

// fetch performs a single attempt
func (s *HTTPSource) fetch(ctx context.Context) ([]post.Post, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &LoadFailure{Kind: KindNetwork, Reason: "invalid request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &LoadFailure{Kind: KindNetwork, Reason: "failed to fetch posts", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return nil, &LoadFailure{
			Kind:   KindStatus,
			Reason: fmt.Sprintf("failed to fetch posts: unexpected status %d", resp.StatusCode),
			Err:    statusError(resp.StatusCode),
		}
	}

	posts, err := post.Decode(resp.Body)
	if err != nil {
		return nil, &LoadFailure{Kind: KindDecode, Reason: "malformed posts payload", Err: err}
	}
	return posts, nil
}

// statusError carries the HTTP status of a failed response
type statusError int

func (e statusError) Error() string {
	return http.StatusText(int(e))
}

func retryable(err error) bool {
	failure := AsLoadFailure(err)
	switch failure.Kind {
	case KindNetwork:
		return true
	case KindStatus:
		code, ok := failure.Err.(statusError)
		return ok && (int(code) >= 500 || int(code) == http.StatusTooManyRequests)
	default:
		return false
	}
}
