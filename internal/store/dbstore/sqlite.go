package dbstore

import (
	"errors"
	"fmt"
	"time"

	"github.com/yiblet/dash/internal/post"
	"github.com/yiblet/dash/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// insertBatchSize bounds the rows written per INSERT during ReplaceAll
const insertBatchSize = 100

// SQLiteStore is a SQLite-backed implementation of store.Store
type SQLiteStore struct {
	db     *gorm.DB
	dbPath string
	now    func() time.Time
}

// NewSQLiteStore creates a new SQLite-backed store at the specified path.
// It initializes the database schema and sets up default configuration.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run auto-migration for all models
	if err := db.AutoMigrate(&PostModel{}, &ConfigItemModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		dbPath: dbPath,
		now:    time.Now,
	}

	if err := s.initDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to init config: %w", err)
	}

	return s, nil
}

// Path returns the database file path
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Posts returns the post store
func (s *SQLiteStore) Posts() store.PostStore {
	return &sqlitePostStore{db: s.db, now: s.now}
}

// Config returns the config store
func (s *SQLiteStore) Config() store.ConfigStore {
	return &sqliteConfigStore{db: s.db}
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// initDefaultConfig sets up default configuration values
func (s *SQLiteStore) initDefaultConfig() error {
	defaults := map[string]string{
		"db_version": "1",
	}

	configStore := s.Config()
	for key, value := range defaults {
		// Only set if not already present
		if _, err := configStore.Get(key); err != nil {
			if err := configStore.Set(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// sqlitePostStore implements store.PostStore using SQLite
type sqlitePostStore struct {
	db  *gorm.DB
	now func() time.Time
}

// ReplaceAll swaps the snapshot inside a single transaction
func (s *sqlitePostStore) ReplaceAll(posts []post.Post) error {
	syncedAt := s.now().UTC()

	models := make([]*PostModel, len(posts))
	for i, p := range posts {
		models[i] = newPostModel(p, i, syncedAt)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&PostModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear posts: %w", err)
		}
		if len(models) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(models, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert posts: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace posts: %w", err)
	}
	return nil
}

// List returns the snapshot in load order
func (s *sqlitePostStore) List() ([]post.Post, error) {
	var models []*PostModel
	if err := s.db.Order("position ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]post.Post, len(models))
	for i, model := range models {
		posts[i] = model.ToPost()
	}
	return posts, nil
}

// Get retrieves the first cached post with the given ID
func (s *sqlitePostStore) Get(id int) (post.Post, error) {
	var model PostModel
	if err := s.db.Where("post_id = ?", id).Order("position ASC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return post.Post{}, fmt.Errorf("post %d: %w", id, store.ErrNotFound)
		}
		return post.Post{}, fmt.Errorf("failed to get post: %w", err)
	}
	return model.ToPost(), nil
}

// Count returns the number of cached posts
func (s *sqlitePostStore) Count() (int, error) {
	var count int64
	if err := s.db.Model(&PostModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return int(count), nil
}

// LastSync returns the write time of the current snapshot
func (s *sqlitePostStore) LastSync() (time.Time, error) {
	var model PostModel
	err := s.db.Select("synced_at").Order("position ASC").First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read sync time: %w", err)
	}
	return model.SyncedAt, nil
}

// Clear removes the snapshot
func (s *sqlitePostStore) Clear() error {
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&PostModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear posts: %w", err)
	}
	return nil
}

// Close releases any resources
func (s *sqlitePostStore) Close() error {
	return nil // No-op, parent store handles DB closing
}

// sqliteConfigStore implements store.ConfigStore using SQLite
type sqliteConfigStore struct {
	db *gorm.DB
}

// Get retrieves a configuration value by key
func (s *sqliteConfigStore) Get(key string) (string, error) {
	var model ConfigItemModel
	if err := s.db.First(&model, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("config key %s: %w", key, store.ErrNotFound)
		}
		return "", fmt.Errorf("failed to get config: %w", err)
	}
	return model.Value, nil
}

// Set stores a configuration value (upsert)
func (s *sqliteConfigStore) Set(key, value string) error {
	model := &ConfigItemModel{
		Key:   key,
		Value: value,
	}

	// Upsert: update if exists, insert if not
	result := s.db.Where("key = ?", key).
		Assign(map[string]interface{}{"value": value, "updated_at": s.db.NowFunc()}).
		FirstOrCreate(model)

	if result.Error != nil {
		return fmt.Errorf("failed to set config: %w", result.Error)
	}

	return nil
}

// List returns all configuration key-value pairs
func (s *sqliteConfigStore) List() (map[string]string, error) {
	var models []ConfigItemModel
	if err := s.db.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list config: %w", err)
	}

	result := make(map[string]string, len(models))
	for _, model := range models {
		result[model.Key] = model.Value
	}

	return result, nil
}

// Delete removes a configuration key
func (s *sqliteConfigStore) Delete(key string) error {
	result := s.db.Delete(&ConfigItemModel{}, "key = ?", key)
	if result.Error != nil {
		return fmt.Errorf("failed to delete config: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("config key %s: %w", key, store.ErrNotFound)
	}
	return nil
}

// Close releases any resources
func (s *sqliteConfigStore) Close() error {
	return nil // No-op, parent store handles DB closing
}
