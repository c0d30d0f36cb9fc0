package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"participation-api/internal/domain"
)

// VoteRepository defines the interface for comment vote data access
type VoteRepository interface {
	// Upsert stores a vote. One vote per (comment, author): a repeated
	// vote overwrites the previous weight, last write wins.
	Upsert(ctx context.Context, vote *domain.CommentVote) error
	FindByComment(ctx context.Context, commentID uuid.UUID) ([]*domain.CommentVote, error)
	SumWeights(ctx context.Context, commentID uuid.UUID) (int64, error)
}

// voteRepositoryImpl is the GORM implementation of VoteRepository
type voteRepositoryImpl struct {
	db *gorm.DB
}

// NewVoteRepository creates a new instance of VoteRepository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepositoryImpl{db: db}
}

// Upsert creates or overwrites the author's vote on a comment
func (r *voteRepositoryImpl) Upsert(ctx context.Context, vote *domain.CommentVote) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "comment_id"}, {Name: "author_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"weight", "updated_at"}),
		}).
		Create(vote).Error
}

// FindByComment finds all votes on a comment
func (r *voteRepositoryImpl) FindByComment(ctx context.Context, commentID uuid.UUID) ([]*domain.CommentVote, error) {
	var votes []*domain.CommentVote
	if err := r.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Find(&votes).Error; err != nil {
		return nil, err
	}
	return votes, nil
}

// SumWeights returns the net vote weight of a comment
func (r *voteRepositoryImpl) SumWeights(ctx context.Context, commentID uuid.UUID) (int64, error) {
	var sum *int64
	if err := r.db.WithContext(ctx).
		Model(&domain.CommentVote{}).
		Select("SUM(weight)").
		Where("comment_id = ?", commentID).
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
