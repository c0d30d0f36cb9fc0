package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"participation-api/internal/domain"
)

// ModerationRepository defines the interface for moderation data access
type ModerationRepository interface {
	Create(ctx context.Context, moderation *domain.Moderation) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Moderation, error)
	FindByReportable(ctx context.Context, ref domain.ResourceRef) (*domain.Moderation, error)
	FindByReportableIDs(ctx context.Context, reportableType domain.ResourceType, ids []uuid.UUID) ([]*domain.Moderation, error)
	// IncrementReportCount atomically bumps the report counter without a
	// read-modify-write cycle, so concurrent reports never lose updates.
	IncrementReportCount(ctx context.Context, id uuid.UUID) error
	// Hide marks the record hidden. Idempotent: a record that is already
	// hidden keeps its original hidden_at.
	Hide(ctx context.Context, id uuid.UUID, at time.Time) error
	Unhide(ctx context.Context, id uuid.UUID) error
	SetUpstreamState(ctx context.Context, id uuid.UUID, state domain.UpstreamModeration) error
	FindPendingOlderThan(ctx context.Context, age time.Duration) ([]*domain.Moderation, error)
	CountPending(ctx context.Context) (int64, error)
}

// moderationRepositoryImpl is the GORM implementation of ModerationRepository
type moderationRepositoryImpl struct {
	db *gorm.DB
}

// NewModerationRepository creates a new instance of ModerationRepository
func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepositoryImpl{db: db}
}

// Create creates a new moderation record
func (r *moderationRepositoryImpl) Create(ctx context.Context, moderation *domain.Moderation) error {
	if err := r.db.WithContext(ctx).Create(moderation).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a moderation record by its ID
func (r *moderationRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Moderation, error) {
	var moderation domain.Moderation
	if err := r.db.WithContext(ctx).First(&moderation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &moderation, nil
}

// FindByReportable finds the moderation record of a reportable entity
func (r *moderationRepositoryImpl) FindByReportable(ctx context.Context, ref domain.ResourceRef) (*domain.Moderation, error) {
	var moderation domain.Moderation
	if err := r.db.WithContext(ctx).
		Where("reportable_type = ? AND reportable_id = ?", ref.Type, ref.ID).
		First(&moderation).Error; err != nil {
		return nil, err
	}
	return &moderation, nil
}

// FindByReportableIDs finds the moderation records for a batch of
// reportables of one kind
func (r *moderationRepositoryImpl) FindByReportableIDs(ctx context.Context, reportableType domain.ResourceType, ids []uuid.UUID) ([]*domain.Moderation, error) {
	if len(ids) == 0 {
		return []*domain.Moderation{}, nil
	}

	var moderations []*domain.Moderation
	if err := r.db.WithContext(ctx).
		Where("reportable_type = ? AND reportable_id IN ?", reportableType, ids).
		Find(&moderations).Error; err != nil {
		return nil, err
	}
	return moderations, nil
}

// IncrementReportCount atomically increments the report counter
func (r *moderationRepositoryImpl) IncrementReportCount(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Moderation{}).
		Where("id = ?", id).
		UpdateColumn("report_count", gorm.Expr("report_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Hide sets hidden_at on a record that is not hidden yet
func (r *moderationRepositoryImpl) Hide(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Moderation{}).
		Where("id = ? AND hidden_at IS NULL", id).
		UpdateColumn("hidden_at", at).Error
}

// Unhide clears hidden_at
func (r *moderationRepositoryImpl) Unhide(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Moderation{}).
		Where("id = ?", id).
		UpdateColumn("hidden_at", nil).Error
}

// SetUpstreamState records the decision of the upstream moderation authority
func (r *moderationRepositoryImpl) SetUpstreamState(ctx context.Context, id uuid.UUID, state domain.UpstreamModeration) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Moderation{}).
		Where("id = ?", id).
		UpdateColumn("upstream_moderation", state)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindPendingOlderThan finds records still awaiting an upstream decision
// that were created before now-age
func (r *moderationRepositoryImpl) FindPendingOlderThan(ctx context.Context, age time.Duration) ([]*domain.Moderation, error) {
	var moderations []*domain.Moderation
	cutoff := time.Now().Add(-age)
	if err := r.db.WithContext(ctx).
		Where("upstream_moderation = ? AND created_at < ?", domain.UpstreamUnmoderate, cutoff).
		Order("created_at ASC").
		Find(&moderations).Error; err != nil {
		return nil, err
	}
	return moderations, nil
}

// CountPending counts records awaiting an upstream decision
func (r *moderationRepositoryImpl) CountPending(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Moderation{}).
		Where("upstream_moderation = ?", domain.UpstreamUnmoderate).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
