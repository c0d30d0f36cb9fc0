package repository

import (
	"context"

	"gorm.io/gorm"

	"participation-api/internal/domain"
)

// DeliveryRepository defines the interface for notification delivery logs
type DeliveryRepository interface {
	Create(ctx context.Context, delivery *domain.NotificationDelivery) error
	CountFailed(ctx context.Context) (int64, error)
}

// deliveryRepositoryImpl is the GORM implementation of DeliveryRepository
type deliveryRepositoryImpl struct {
	db *gorm.DB
}

// NewDeliveryRepository creates a new instance of DeliveryRepository
func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepositoryImpl{db: db}
}

// Create creates a new delivery log entry
func (r *deliveryRepositoryImpl) Create(ctx context.Context, delivery *domain.NotificationDelivery) error {
	if err := r.db.WithContext(ctx).Create(delivery).Error; err != nil {
		return err
	}
	return nil
}

// CountFailed counts delivery attempts that did not reach the renderer
func (r *deliveryRepositoryImpl) CountFailed(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.NotificationDelivery{}).
		Where("succeeded = ?", false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
