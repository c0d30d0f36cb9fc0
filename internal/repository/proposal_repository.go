package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"participation-api/internal/domain"
)

// ProposalRepository defines the interface for proposal data access
type ProposalRepository interface {
	Create(ctx context.Context, proposal *domain.Proposal) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error)
	// FindVisibleBySpace lists the proposals of a space that pass the
	// moderation gate, newest first
	FindVisibleBySpace(ctx context.Context, spaceID uuid.UUID) ([]*domain.Proposal, error)
	CountAll(ctx context.Context) (int64, error)
}

// proposalRepositoryImpl is the GORM implementation of ProposalRepository
type proposalRepositoryImpl struct {
	db *gorm.DB
}

// NewProposalRepository creates a new instance of ProposalRepository
func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &proposalRepositoryImpl{db: db}
}

// Create creates a new proposal
func (r *proposalRepositoryImpl) Create(ctx context.Context, proposal *domain.Proposal) error {
	if err := r.db.WithContext(ctx).Create(proposal).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a proposal by its ID
func (r *proposalRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	var proposal domain.Proposal
	if err := r.db.WithContext(ctx).First(&proposal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &proposal, nil
}

// FindVisibleBySpace lists moderation-cleared proposals of a space
func (r *proposalRepositoryImpl) FindVisibleBySpace(ctx context.Context, spaceID uuid.UUID) ([]*domain.Proposal, error) {
	var proposals []*domain.Proposal
	if err := r.db.WithContext(ctx).
		Joins("JOIN moderations ON moderations.reportable_type = ? AND moderations.reportable_id = proposals.id", domain.ResourceTypeProposal).
		Where("proposals.participatory_space_id = ?", spaceID).
		Where("moderations.upstream_moderation = ? AND moderations.hidden_at IS NULL", domain.UpstreamAuthorized).
		Order("proposals.created_at DESC").
		Find(&proposals).Error; err != nil {
		return nil, err
	}
	return proposals, nil
}

// CountAll counts all proposals regardless of visibility
func (r *proposalRepositoryImpl) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Proposal{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
