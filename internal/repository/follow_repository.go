package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"participation-api/internal/domain"
)

// FollowRepository defines the interface for follow data access
type FollowRepository interface {
	Create(ctx context.Context, follow *domain.Follow) error
	FindFollowerIDs(ctx context.Context, ref domain.ResourceRef) ([]uuid.UUID, error)
}

// followRepositoryImpl is the GORM implementation of FollowRepository
type followRepositoryImpl struct {
	db *gorm.DB
}

// NewFollowRepository creates a new instance of FollowRepository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepositoryImpl{db: db}
}

// Create creates a new follow
func (r *followRepositoryImpl) Create(ctx context.Context, follow *domain.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		return err
	}
	return nil
}

// FindFollowerIDs returns the users following a followable entity
func (r *followRepositoryImpl) FindFollowerIDs(ctx context.Context, ref domain.ResourceRef) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("followable_type = ? AND followable_id = ?", ref.Type, ref.ID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
