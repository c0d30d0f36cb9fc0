package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"participation-api/internal/domain"
	"participation-api/internal/events"
)

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	CreateFunc                  func(ctx context.Context, comment *domain.Comment) error
	FindByIDFunc                func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindSortedByCommentableFunc func(ctx context.Context, ref domain.ResourceRef, order domain.CommentOrder) ([]*domain.Comment, error)
	CountAllFunc                func(ctx context.Context) (int64, error)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCommentRepository) FindSortedByCommentable(ctx context.Context, ref domain.ResourceRef, order domain.CommentOrder) ([]*domain.Comment, error) {
	if m.FindSortedByCommentableFunc != nil {
		return m.FindSortedByCommentableFunc(ctx, ref, order)
	}
	return nil, nil
}

func (m *MockCommentRepository) CountAll(ctx context.Context) (int64, error) {
	if m.CountAllFunc != nil {
		return m.CountAllFunc(ctx)
	}
	return 0, nil
}

// MockModerationRepository is a mock implementation of ModerationRepository
type MockModerationRepository struct {
	CreateFunc               func(ctx context.Context, moderation *domain.Moderation) error
	FindByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Moderation, error)
	FindByReportableFunc     func(ctx context.Context, ref domain.ResourceRef) (*domain.Moderation, error)
	FindByReportableIDsFunc  func(ctx context.Context, reportableType domain.ResourceType, ids []uuid.UUID) ([]*domain.Moderation, error)
	IncrementReportCountFunc func(ctx context.Context, id uuid.UUID) error
	HideFunc                 func(ctx context.Context, id uuid.UUID, at time.Time) error
	UnhideFunc               func(ctx context.Context, id uuid.UUID) error
	SetUpstreamStateFunc     func(ctx context.Context, id uuid.UUID, state domain.UpstreamModeration) error
	FindPendingOlderThanFunc func(ctx context.Context, age time.Duration) ([]*domain.Moderation, error)
	CountPendingFunc         func(ctx context.Context) (int64, error)
}

func (m *MockModerationRepository) Create(ctx context.Context, moderation *domain.Moderation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, moderation)
	}
	return nil
}

func (m *MockModerationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Moderation, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &domain.Moderation{BaseModel: domain.BaseModel{ID: id}}, nil
}

func (m *MockModerationRepository) FindByReportable(ctx context.Context, ref domain.ResourceRef) (*domain.Moderation, error) {
	if m.FindByReportableFunc != nil {
		return m.FindByReportableFunc(ctx, ref)
	}
	return nil, nil
}

func (m *MockModerationRepository) FindByReportableIDs(ctx context.Context, reportableType domain.ResourceType, ids []uuid.UUID) ([]*domain.Moderation, error) {
	if m.FindByReportableIDsFunc != nil {
		return m.FindByReportableIDsFunc(ctx, reportableType, ids)
	}
	return nil, nil
}

func (m *MockModerationRepository) IncrementReportCount(ctx context.Context, id uuid.UUID) error {
	if m.IncrementReportCountFunc != nil {
		return m.IncrementReportCountFunc(ctx, id)
	}
	return nil
}

func (m *MockModerationRepository) Hide(ctx context.Context, id uuid.UUID, at time.Time) error {
	if m.HideFunc != nil {
		return m.HideFunc(ctx, id, at)
	}
	return nil
}

func (m *MockModerationRepository) Unhide(ctx context.Context, id uuid.UUID) error {
	if m.UnhideFunc != nil {
		return m.UnhideFunc(ctx, id)
	}
	return nil
}

func (m *MockModerationRepository) SetUpstreamState(ctx context.Context, id uuid.UUID, state domain.UpstreamModeration) error {
	if m.SetUpstreamStateFunc != nil {
		return m.SetUpstreamStateFunc(ctx, id, state)
	}
	return nil
}

func (m *MockModerationRepository) FindPendingOlderThan(ctx context.Context, age time.Duration) ([]*domain.Moderation, error) {
	if m.FindPendingOlderThanFunc != nil {
		return m.FindPendingOlderThanFunc(ctx, age)
	}
	return nil, nil
}

func (m *MockModerationRepository) CountPending(ctx context.Context) (int64, error) {
	if m.CountPendingFunc != nil {
		return m.CountPendingFunc(ctx)
	}
	return 0, nil
}

// MockVoteRepository is a mock implementation of VoteRepository
type MockVoteRepository struct {
	UpsertFunc        func(ctx context.Context, vote *domain.CommentVote) error
	FindByCommentFunc func(ctx context.Context, commentID uuid.UUID) ([]*domain.CommentVote, error)
	SumWeightsFunc    func(ctx context.Context, commentID uuid.UUID) (int64, error)
}

func (m *MockVoteRepository) Upsert(ctx context.Context, vote *domain.CommentVote) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, vote)
	}
	return nil
}

func (m *MockVoteRepository) FindByComment(ctx context.Context, commentID uuid.UUID) ([]*domain.CommentVote, error) {
	if m.FindByCommentFunc != nil {
		return m.FindByCommentFunc(ctx, commentID)
	}
	return nil, nil
}

func (m *MockVoteRepository) SumWeights(ctx context.Context, commentID uuid.UUID) (int64, error) {
	if m.SumWeightsFunc != nil {
		return m.SumWeightsFunc(ctx, commentID)
	}
	return 0, nil
}

// MockProposalRepository is a mock implementation of ProposalRepository
type MockProposalRepository struct {
	CreateFunc             func(ctx context.Context, proposal *domain.Proposal) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Proposal, error)
	FindVisibleBySpaceFunc func(ctx context.Context, spaceID uuid.UUID) ([]*domain.Proposal, error)
	CountAllFunc           func(ctx context.Context) (int64, error)
}

func (m *MockProposalRepository) Create(ctx context.Context, proposal *domain.Proposal) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, proposal)
	}
	return nil
}

func (m *MockProposalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProposalRepository) FindVisibleBySpace(ctx context.Context, spaceID uuid.UUID) ([]*domain.Proposal, error) {
	if m.FindVisibleBySpaceFunc != nil {
		return m.FindVisibleBySpaceFunc(ctx, spaceID)
	}
	return nil, nil
}

func (m *MockProposalRepository) CountAll(ctx context.Context) (int64, error) {
	if m.CountAllFunc != nil {
		return m.CountAllFunc(ctx)
	}
	return 0, nil
}

// MockMeetingRepository is a mock implementation of MeetingRepository
type MockMeetingRepository struct {
	CreateFunc   func(ctx context.Context, meeting *domain.Meeting) error
	FindByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Meeting, error)
}

func (m *MockMeetingRepository) Create(ctx context.Context, meeting *domain.Meeting) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, meeting)
	}
	return nil
}

func (m *MockMeetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

// MockSpaceRepository is a mock implementation of SpaceRepository
type MockSpaceRepository struct {
	CreateFunc           func(ctx context.Context, space *domain.ParticipatorySpace) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.ParticipatorySpace, error)
	FindModeratorIDsFunc func(ctx context.Context, spaceID uuid.UUID) ([]uuid.UUID, error)
	AddModeratorFunc     func(ctx context.Context, moderator *domain.SpaceModerator) error
}

func (m *MockSpaceRepository) Create(ctx context.Context, space *domain.ParticipatorySpace) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, space)
	}
	return nil
}

func (m *MockSpaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ParticipatorySpace, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &domain.ParticipatorySpace{BaseModel: domain.BaseModel{ID: id}, Slug: "test-space", DefaultLocale: "en"}, nil
}

func (m *MockSpaceRepository) FindModeratorIDs(ctx context.Context, spaceID uuid.UUID) ([]uuid.UUID, error) {
	if m.FindModeratorIDsFunc != nil {
		return m.FindModeratorIDsFunc(ctx, spaceID)
	}
	return nil, nil
}

func (m *MockSpaceRepository) AddModerator(ctx context.Context, moderator *domain.SpaceModerator) error {
	if m.AddModeratorFunc != nil {
		return m.AddModeratorFunc(ctx, moderator)
	}
	return nil
}

// MockFollowRepository is a mock implementation of FollowRepository
type MockFollowRepository struct {
	CreateFunc          func(ctx context.Context, follow *domain.Follow) error
	FindFollowerIDsFunc func(ctx context.Context, ref domain.ResourceRef) ([]uuid.UUID, error)
}

func (m *MockFollowRepository) Create(ctx context.Context, follow *domain.Follow) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, follow)
	}
	return nil
}

func (m *MockFollowRepository) FindFollowerIDs(ctx context.Context, ref domain.ResourceRef) ([]uuid.UUID, error) {
	if m.FindFollowerIDsFunc != nil {
		return m.FindFollowerIDsFunc(ctx, ref)
	}
	return nil, nil
}

// MockPublisher records published events
type MockPublisher struct {
	PublishFunc func(ctx context.Context, event events.Event) error
	Published   []events.Event
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.Published = append(m.Published, event)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, event)
	}
	return nil
}
