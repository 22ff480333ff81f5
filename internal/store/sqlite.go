package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/codyseavey/zhja-translate/internal/models"
)

// SQLiteStore keeps values in the kv_records table through gorm.
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore wraps an opened database (see database.Open).
func NewSQLiteStore(db *gorm.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rec models.KVRecord
	err := s.db.WithContext(ctx).Where("store_key = ?", key).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(rec.Value), nil
}

func (s *SQLiteStore) Put(ctx context.Context, key string, value []byte) error {
	rec := models.KVRecord{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now(),
	}

	// Upsert: whole-value overwrite, no merge
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}

func (s *SQLiteStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.db.WithContext(ctx).
		Model(&models.KVRecord{}).
		Where("store_key LIKE ?", prefix+"%").
		Pluck("store_key", &keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
