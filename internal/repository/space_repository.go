package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"participation-api/internal/domain"
)

// SpaceRepository defines the interface for participatory space data access
type SpaceRepository interface {
	Create(ctx context.Context, space *domain.ParticipatorySpace) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ParticipatorySpace, error)
	FindModeratorIDs(ctx context.Context, spaceID uuid.UUID) ([]uuid.UUID, error)
	AddModerator(ctx context.Context, moderator *domain.SpaceModerator) error
}

// spaceRepositoryImpl is the GORM implementation of SpaceRepository
type spaceRepositoryImpl struct {
	db *gorm.DB
}

// NewSpaceRepository creates a new instance of SpaceRepository
func NewSpaceRepository(db *gorm.DB) SpaceRepository {
	return &spaceRepositoryImpl{db: db}
}

// Create creates a new participatory space
func (r *spaceRepositoryImpl) Create(ctx context.Context, space *domain.ParticipatorySpace) error {
	if err := r.db.WithContext(ctx).Create(space).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a participatory space by its ID
func (r *spaceRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.ParticipatorySpace, error) {
	var space domain.ParticipatorySpace
	if err := r.db.WithContext(ctx).First(&space, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &space, nil
}

// FindModeratorIDs returns the user IDs holding the moderator role in a space
func (r *spaceRepositoryImpl) FindModeratorIDs(ctx context.Context, spaceID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&domain.SpaceModerator{}).
		Where("participatory_space_id = ?", spaceID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// AddModerator grants a user the moderator role in a space
func (r *spaceRepositoryImpl) AddModerator(ctx context.Context, moderator *domain.SpaceModerator) error {
	if err := r.db.WithContext(ctx).Create(moderator).Error; err != nil {
		return err
	}
	return nil
}
