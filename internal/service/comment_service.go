package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"participation-api/internal/domain"
	"participation-api/internal/dto"
	"participation-api/internal/events"
	"participation-api/internal/metrics"
	"participation-api/internal/repository"
	"participation-api/internal/response"
)

// CommentService defines the interface for comment business logic
type CommentService interface {
	CreateComment(ctx context.Context, authorID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, ref domain.ResourceRef, orderKey string) ([]*dto.CommentResponse, error)
	VoteComment(ctx context.Context, authorID, commentID uuid.UUID, weight int) error
}

// commentServiceImpl is the implementation of CommentService
type commentServiceImpl struct {
	commentRepo    repository.CommentRepository
	moderationRepo repository.ModerationRepository
	voteRepo       repository.VoteRepository
	proposalRepo   repository.ProposalRepository
	meetingRepo    repository.MeetingRepository
	spaceRepo      repository.SpaceRepository
	followRepo     repository.FollowRepository
	publisher      events.Publisher
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	moderationRepo repository.ModerationRepository,
	voteRepo repository.VoteRepository,
	proposalRepo repository.ProposalRepository,
	meetingRepo repository.MeetingRepository,
	spaceRepo repository.SpaceRepository,
	followRepo repository.FollowRepository,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) CommentService {
	return &commentServiceImpl{
		commentRepo:    commentRepo,
		moderationRepo: moderationRepo,
		voteRepo:       voteRepo,
		proposalRepo:   proposalRepo,
		meetingRepo:    meetingRepo,
		spaceRepo:      spaceRepo,
		followRepo:     followRepo,
		publisher:      publisher,
		metrics:        m,
		logger:         logger,
	}
}

// CreateComment validates the form, persists the comment with its
// moderation record and triggers the notification fan-out. An invalid
// form produces no writes and no events. A failed fan-out never undoes
// the writes.
func (s *commentServiceImpl) CreateComment(ctx context.Context, authorID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid comment form", err.Error())
	}

	commentable, err := s.resolveCommentable(ctx, req.Ref())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Commentable not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve commentable", err.Error())
	}

	spaceID := commentable.SpaceID()
	if spaceID == uuid.Nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Commentable has no participatory space", "")
	}

	root := commentable.RootRef()
	comment := &domain.Comment{
		Body:                req.Body,
		Alignment:           req.Alignment,
		AuthorID:            authorID,
		GroupID:             req.GroupID,
		CommentableType:     req.Ref().Type,
		CommentableID:       req.Ref().ID,
		RootCommentableType: root.Type,
		RootCommentableID:   root.ID,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create comment", err.Error())
	}

	moderation := &domain.Moderation{
		ReportableType:       domain.ResourceTypeComment,
		ReportableID:         comment.ID,
		ParticipatorySpaceID: spaceID,
		UpstreamModeration:   domain.UpstreamUnmoderate,
	}
	if err := s.moderationRepo.Create(ctx, moderation); err != nil {
		// The comment stays invisible without its moderation record (the
		// gate fails closed), so surfacing the error is enough.
		s.logger.Error("Failed to create moderation record for comment",
			zap.String("comment_id", comment.ID.String()),
			zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create moderation record", err.Error())
	}
	comment.Moderation = moderation

	if s.metrics != nil {
		s.metrics.IncrementCommentCreated()
	}

	s.notifyCommentCreated(ctx, comment, commentable, authorID, spaceID)

	return toCommentResponse(comment), nil
}

// ListComments returns the visible comments of a commentable in the
// requested order
func (s *commentServiceImpl) ListComments(ctx context.Context, ref domain.ResourceRef, orderKey string) ([]*dto.CommentResponse, error) {
	order, err := domain.ParseCommentOrder(orderKey)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid ordering key", orderKey)
	}

	comments, err := s.commentRepo.FindSortedByCommentable(ctx, ref, order)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch comments", err.Error())
	}

	responses := make([]*dto.CommentResponse, len(comments))
	for i, c := range comments {
		responses[i] = toCommentResponse(c)
	}
	return responses, nil
}

// VoteComment stores the author's vote on a comment. A repeated vote
// overwrites the previous weight.
func (s *commentServiceImpl) VoteComment(ctx context.Context, authorID, commentID uuid.UUID, weight int) error {
	if !domain.ValidWeight(weight) {
		return response.NewAppError(response.ErrCodeValidation, "Vote weight must be -1 or 1", "")
	}

	if _, err := s.commentRepo.FindByID(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Comment not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch comment", err.Error())
	}

	vote := &domain.CommentVote{
		CommentID: commentID,
		AuthorID:  authorID,
		Weight:    weight,
	}
	if err := s.voteRepo.Upsert(ctx, vote); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to store vote", err.Error())
	}

	return nil
}

// resolveCommentable looks up the target of a comment. The set of
// commentable kinds is closed; unknown kinds are rejected by form
// validation before this runs.
func (s *commentServiceImpl) resolveCommentable(ctx context.Context, ref domain.ResourceRef) (domain.Commentable, error) {
	switch ref.Type {
	case domain.ResourceTypeProposal:
		proposal, err := s.proposalRepo.FindByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		followerIDs, err := s.followRepo.FindFollowerIDs(ctx, ref)
		if err != nil {
			return nil, err
		}
		proposal.FollowerIDs = followerIDs
		return proposal, nil
	case domain.ResourceTypeMeeting:
		meeting, err := s.meetingRepo.FindByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		followerIDs, err := s.followRepo.FindFollowerIDs(ctx, ref)
		if err != nil {
			return nil, err
		}
		meeting.FollowerIDs = followerIDs
		return meeting, nil
	case domain.ResourceTypeComment:
		return s.commentRepo.FindByID(ctx, ref.ID)
	}
	return nil, gorm.ErrRecordNotFound
}

// notifyCommentCreated publishes the comment_created event to the
// commentable's recipients, excluding the author. Best-effort: failures
// are logged, never returned.
func (s *commentServiceImpl) notifyCommentCreated(ctx context.Context, comment *domain.Comment, commentable domain.Commentable, authorID, spaceID uuid.UUID) {
	recipients := dedupExcluding(commentable.UsersToNotifyOnCommentCreated(), authorID)
	if len(recipients) == 0 {
		return
	}

	extra := map[string]interface{}{
		events.ExtraCommentID:       comment.ID.String(),
		events.ExtraModerationEvent: true,
	}
	s.addSpaceRouting(ctx, extra, spaceID)

	event := events.Event{
		Name:         events.EventCommentCreated,
		EventClass:   events.EventClassCommentCreated,
		Resource:     comment.RootRef(),
		RecipientIDs: recipients,
		Extra:        extra,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish comment created event",
			zap.String("comment_id", comment.ID.String()),
			zap.Error(err))
	}
}

// addSpaceRouting attaches the moderation queue routing context to an
// event payload. Missing space data degrades to an event without routing.
func (s *commentServiceImpl) addSpaceRouting(ctx context.Context, extra map[string]interface{}, spaceID uuid.UUID) {
	space, err := s.spaceRepo.FindByID(ctx, spaceID)
	if err != nil {
		s.logger.Warn("Failed to load participatory space for event routing",
			zap.String("space_id", spaceID.String()),
			zap.Error(err))
		return
	}
	extra[events.ExtraProcessSlug] = space.Slug
	extra[events.ExtraLocale] = space.DefaultLocale
}

// dedupExcluding removes duplicates and the excluded user while keeping
// first-seen order
func dedupExcluding(ids []uuid.UUID, excluded uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == excluded || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

// toCommentResponse converts domain.Comment to dto.CommentResponse
func toCommentResponse(comment *domain.Comment) *dto.CommentResponse {
	return &dto.CommentResponse{
		CommentID:       comment.ID,
		Body:            comment.Body,
		Alignment:       comment.Alignment,
		AuthorID:        comment.AuthorID,
		GroupID:         comment.GroupID,
		CommentableType: string(comment.CommentableType),
		CommentableID:   comment.CommentableID,
		UpVotes:         len(comment.UpVotes()),
		DownVotes:       len(comment.DownVotes()),
		CreatedAt:       comment.CreatedAt,
		UpdatedAt:       comment.UpdatedAt,
	}
}
