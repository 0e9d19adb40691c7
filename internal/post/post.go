// Package post defines the record shown as one row of the dashboard.
package post

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// DateLayout is the fixed en-US short date used by the date column.
const DateLayout = "Jan 2, 2006"

// Post is one entry of the demo API's /posts collection.
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// ItemID returns the decimal text of the post ID.
func (p Post) ItemID() string { return strconv.Itoa(p.ID) }

// ItemTitle returns the post title.
func (p Post) ItemTitle() string { return p.Title }

// DisplayDate simulates a publication date by counting ID days back from now.
func (p Post) DisplayDate(now time.Time) string {
	return now.AddDate(0, 0, -p.ID).Format(DateLayout)
}

// Decode reads a JSON array of posts.
func Decode(r io.Reader) ([]Post, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	var posts []Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	if posts == nil {
		return nil, fmt.Errorf("failed to decode posts: expected a JSON array")
	}
	return posts, nil
}
