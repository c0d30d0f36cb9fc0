package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"participation-api/internal/domain"
)

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	// FindSortedByCommentable returns the visible comments of a commentable
	// in the requested order. Visibility is decided by the moderation join:
	// only comments whose moderation record is upstream-authorized and not
	// locally hidden are returned; comments without a record are excluded.
	FindSortedByCommentable(ctx context.Context, ref domain.ResourceRef, order domain.CommentOrder) ([]*domain.Comment, error)
	CountAll(ctx context.Context) (int64, error)
}

// commentRepositoryImpl is the GORM implementation of CommentRepository
type commentRepositoryImpl struct {
	db             *gorm.DB
	moderationRepo ModerationRepository
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *gorm.DB, moderationRepo ModerationRepository) CommentRepository {
	return &commentRepositoryImpl{db: db, moderationRepo: moderationRepo}
}

// Create creates a new comment
func (r *commentRepositoryImpl) Create(ctx context.Context, comment *domain.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a comment by its ID, with votes and moderation attached
func (r *commentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).
		Preload("Votes").
		First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}

	moderation, err := r.moderationRepo.FindByReportable(ctx, comment.Ref())
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	comment.Moderation = moderation

	return &comment, nil
}

// FindSortedByCommentable implements the sorted comment query. Votes are
// preloaded in the same batch so callers can read author, up and down
// votes without further queries.
func (r *commentRepositoryImpl) FindSortedByCommentable(ctx context.Context, ref domain.ResourceRef, order domain.CommentOrder) ([]*domain.Comment, error) {
	orderClause, err := orderClauseFor(order)
	if err != nil {
		return nil, err
	}

	var comments []*domain.Comment
	if err := r.db.WithContext(ctx).
		Joins("JOIN moderations ON moderations.reportable_type = ? AND moderations.reportable_id = comments.id", domain.ResourceTypeComment).
		Where("comments.commentable_type = ? AND comments.commentable_id = ?", ref.Type, ref.ID).
		Where("moderations.upstream_moderation = ? AND moderations.hidden_at IS NULL", domain.UpstreamAuthorized).
		Order(orderClause).
		Preload("Votes").
		Find(&comments).Error; err != nil {
		return nil, err
	}

	if err := r.attachModerations(ctx, comments); err != nil {
		return nil, err
	}

	return comments, nil
}

// CountAll counts all comments regardless of visibility
func (r *commentRepositoryImpl) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Comment{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// orderClauseFor maps an ordering key to its SQL. Every non-chronological
// order breaks ties by created_at ascending so repeated queries stay
// deterministic.
func orderClauseFor(order domain.CommentOrder) (string, error) {
	switch order {
	case domain.CommentOrderDefault:
		return "comments.created_at ASC", nil
	case domain.CommentOrderRecent:
		return "comments.created_at DESC", nil
	case domain.CommentOrderBestRated:
		return "(SELECT COALESCE(SUM(weight), 0) FROM comment_votes WHERE comment_votes.comment_id = comments.id) DESC, comments.created_at ASC", nil
	case domain.CommentOrderMostDiscussed:
		// Direct replies only; reply visibility does not influence the count
		return "(SELECT COUNT(*) FROM comments replies WHERE replies.commentable_type = 'COMMENT' AND replies.commentable_id = comments.id) DESC, comments.created_at ASC", nil
	}
	return "", domain.ErrInvalidCommentOrder
}

// attachModerations loads the moderation records for a batch of comments
// with a single query
func (r *commentRepositoryImpl) attachModerations(ctx context.Context, comments []*domain.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}

	moderations, err := r.moderationRepo.FindByReportableIDs(ctx, domain.ResourceTypeComment, ids)
	if err != nil {
		return err
	}

	byID := make(map[uuid.UUID]*domain.Moderation, len(moderations))
	for _, m := range moderations {
		byID[m.ReportableID] = m
	}
	for _, c := range comments {
		c.Moderation = byID[c.ID]
	}

	return nil
}
