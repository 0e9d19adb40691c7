package dbstore

import (
	"time"

	"github.com/yiblet/dash/internal/post"
)

// PostModel represents one cached post. Rows are ordered by Position, which
// records the order the source returned them in.
type PostModel struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	PostID   int       `gorm:"not null;index"` // Identifier assigned by the source
	UserID   int       `gorm:"not null"`       // Author reference, passed through
	Title    string    `gorm:"type:text;not null"`
	Body     string    `gorm:"type:text;not null"`
	Position int       `gorm:"not null;index"` // Load order within the snapshot
	SyncedAt time.Time `gorm:"not null"`       // When the snapshot was written
}

// TableName returns the table name for PostModel
func (PostModel) TableName() string {
	return "posts"
}

// ToPost converts the GORM model to a post.Post
func (m *PostModel) ToPost() post.Post {
	return post.Post{
		ID:     m.PostID,
		UserID: m.UserID,
		Title:  m.Title,
		Body:   m.Body,
	}
}

// newPostModel builds the row for p at the given snapshot position
func newPostModel(p post.Post, position int, syncedAt time.Time) *PostModel {
	return &PostModel{
		PostID:   p.ID,
		UserID:   p.UserID,
		Title:    p.Title,
		Body:     p.Body,
		Position: position,
		SyncedAt: syncedAt,
	}
}

// ConfigItemModel represents a configuration key-value pair
type ConfigItemModel struct {
	Key       string    `gorm:"primaryKey;size:100"`
	Value     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for ConfigItemModel
func (ConfigItemModel) TableName() string {
	return "config"
}
