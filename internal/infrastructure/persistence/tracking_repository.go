package persistence

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopops/backend/internal/domain/shop"
	"github.com/shopops/backend/internal/infrastructure/persistence/models"
)

// LocalTrackingStore implements shop.TrackingStore on the local database.
type LocalTrackingStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

var _ shop.TrackingStore = (*LocalTrackingStore)(nil)

// NewLocalTrackingStore creates a new LocalTrackingStore
func NewLocalTrackingStore(db *gorm.DB, logger *zap.Logger) *LocalTrackingStore {
	return &LocalTrackingStore{db: db, logger: logger}
}

// List returns all tracking annotations.
func (s *LocalTrackingStore) List(ctx context.Context) ([]shop.TrackingAnnotation, error) {
	var trackingModels []models.TrackingModel
	if err := s.db.WithContext(ctx).Find(&trackingModels).Error; err != nil {
		return nil, err
	}
	annotations := make([]shop.TrackingAnnotation, len(trackingModels))
	for i, model := range trackingModels {
		annotations[i] = model.ToDomain()
	}
	return annotations, nil
}

// Get returns the annotation for an order, or nil when none exists.
func (s *LocalTrackingStore) Get(ctx context.Context, orderID string) (*shop.TrackingAnnotation, error) {
	var model models.TrackingModel
	if err := s.db.WithContext(ctx).First(&model, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	annotation := model.ToDomain()
	return &annotation, nil
}

// Save upserts an annotation. The latest write for an order id wins; failures
// are logged and not surfaced to the triggering action.
func (s *LocalTrackingStore) Save(ctx context.Context, annotation shop.TrackingAnnotation) {
	var model models.TrackingModel
	model.FromDomain(annotation)

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"tracking_code", "provider", "status", "updated_at"}),
		}).
		Create(&model).Error
	if err != nil {
		s.logger.Warn("failed to save tracking annotation",
			zap.String("order_id", annotation.OrderID),
			zap.Error(err),
		)
	}
}
