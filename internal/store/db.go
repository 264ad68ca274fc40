package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fortune-cookies-ai/fc-backend/internal/config"
	"github.com/fortune-cookies-ai/fc-backend/internal/store/schema"
)

// DBBlobStore implements BlobStore on PostgreSQL
type DBBlobStore struct {
	db *gorm.DB
}

// NewDBBlobStore creates a PostgreSQL-backed blob store
func NewDBBlobStore(db *gorm.DB) *DBBlobStore {
	return &DBBlobStore{db: db}
}

// Read returns the blob stored under key, or ErrBlobNotFound
func (s *DBBlobStore) Read(ctx context.Context, key string) ([]byte, error) {
	var blob schema.Blob
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&blob).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to read blob %s: %w", key, err)
	}
	return blob.Value, nil
}

// Write durably replaces the blob stored under key
func (s *DBBlobStore) Write(ctx context.Context, key string, data []byte) error {
	blob := schema.Blob{
		Key:       key,
		Value:     data,
		UpdatedAt: time.Now(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("failed to write blob %s: %w", key, err)
	}
	return nil
}

// OpenPostgres opens a GORM connection with the configured pool settings
// and migrates the blobs table
func OpenPostgres(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.AutoMigrate(&schema.Blob{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}
