package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/infrastructure/persistence/models"
)

// LocalSettingsStore implements shared.SettingsStore on the local database.
type LocalSettingsStore struct {
	db *gorm.DB
}

var _ shared.SettingsStore = (*LocalSettingsStore)(nil)

// NewLocalSettingsStore creates a new LocalSettingsStore
func NewLocalSettingsStore(db *gorm.DB) *LocalSettingsStore {
	return &LocalSettingsStore{db: db}
}

// Get returns the raw JSON value for key, or nil when the key is absent.
func (s *LocalSettingsStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var model models.SettingModel
	if err := s.db.WithContext(ctx).First(&model, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("persistence: failed to load setting %q: %w", key, err)
	}
	return shared.DecodeMaybeDoubleEncoded(json.RawMessage(model.Value)), nil
}

// Set persists value for key, replacing any previous value.
func (s *LocalSettingsStore) Set(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("persistence: failed to encode setting %q: %w", key, err)
	}

	model := models.SettingModel{Key: key, Value: string(encoded)}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&model).Error; err != nil {
		return fmt.Errorf("persistence: failed to save setting %q: %w", key, err)
	}
	return nil
}
