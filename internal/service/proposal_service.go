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

// ProposalService defines the interface for proposal business logic
type ProposalService interface {
	CreateProposal(ctx context.Context, authorID uuid.UUID, req *dto.CreateProposalRequest) (*dto.ProposalResponse, error)
	ListProposals(ctx context.Context, spaceID uuid.UUID) ([]*dto.ProposalResponse, error)
}

// proposalServiceImpl is the implementation of ProposalService
type proposalServiceImpl struct {
	proposalRepo   repository.ProposalRepository
	moderationRepo repository.ModerationRepository
	spaceRepo      repository.SpaceRepository
	publisher      events.Publisher
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewProposalService creates a new instance of ProposalService
func NewProposalService(
	proposalRepo repository.ProposalRepository,
	moderationRepo repository.ModerationRepository,
	spaceRepo repository.SpaceRepository,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) ProposalService {
	return &proposalServiceImpl{
		proposalRepo:   proposalRepo,
		moderationRepo: moderationRepo,
		spaceRepo:      spaceRepo,
		publisher:      publisher,
		metrics:        m,
		logger:         logger,
	}
}

// CreateProposal validates the form, persists the proposal with its
// moderation record and notifies the space's moderators that new content
// awaits an upstream decision
func (s *proposalServiceImpl) CreateProposal(ctx context.Context, authorID uuid.UUID, req *dto.CreateProposalRequest) (*dto.ProposalResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid proposal form", err.Error())
	}

	space, err := s.spaceRepo.FindByID(ctx, req.ParticipatorySpaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Participatory space not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify participatory space", err.Error())
	}

	proposal := &domain.Proposal{
		ParticipatorySpaceID: space.ID,
		AuthorID:             authorID,
		Title:                req.Title,
		Body:                 req.Body,
	}
	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create proposal", err.Error())
	}

	moderation := &domain.Moderation{
		ReportableType:       domain.ResourceTypeProposal,
		ReportableID:         proposal.ID,
		ParticipatorySpaceID: space.ID,
		UpstreamModeration:   domain.UpstreamUnmoderate,
	}
	if err := s.moderationRepo.Create(ctx, moderation); err != nil {
		s.logger.Error("Failed to create moderation record for proposal",
			zap.String("proposal_id", proposal.ID.String()),
			zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create moderation record", err.Error())
	}
	proposal.Moderation = moderation

	if s.metrics != nil {
		s.metrics.IncrementProposalCreated()
	}

	s.notifyProposalCreated(ctx, proposal, space, authorID)

	return toProposalResponse(proposal), nil
}

// ListProposals lists the moderation-cleared proposals of a space
func (s *proposalServiceImpl) ListProposals(ctx context.Context, spaceID uuid.UUID) ([]*dto.ProposalResponse, error) {
	if _, err := s.spaceRepo.FindByID(ctx, spaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Participatory space not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify participatory space", err.Error())
	}

	proposals, err := s.proposalRepo.FindVisibleBySpace(ctx, spaceID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch proposals", err.Error())
	}

	responses := make([]*dto.ProposalResponse, len(proposals))
	for i, p := range proposals {
		responses[i] = toProposalResponse(p)
	}
	return responses, nil
}

// notifyProposalCreated publishes the proposal_created event to the
// space's moderators, excluding the author. Best-effort.
func (s *proposalServiceImpl) notifyProposalCreated(ctx context.Context, proposal *domain.Proposal, space *domain.ParticipatorySpace, authorID uuid.UUID) {
	moderatorIDs, err := s.spaceRepo.FindModeratorIDs(ctx, space.ID)
	if err != nil {
		s.logger.Warn("Failed to load space moderators for proposal event",
			zap.String("space_id", space.ID.String()),
			zap.Error(err))
		return
	}

	recipients := dedupExcluding(moderatorIDs, authorID)
	if len(recipients) == 0 {
		return
	}

	event := events.Event{
		Name:         events.EventProposalCreated,
		EventClass:   events.EventClassProposalCreated,
		Resource:     proposal.Ref(),
		RecipientIDs: recipients,
		Extra: map[string]interface{}{
			events.ExtraModerationEvent: true,
			events.ExtraProcessSlug:     space.Slug,
			events.ExtraLocale:          space.DefaultLocale,
		},
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish proposal created event",
			zap.String("proposal_id", proposal.ID.String()),
			zap.Error(err))
	}
}

// toProposalResponse converts domain.Proposal to dto.ProposalResponse
func toProposalResponse(proposal *domain.Proposal) *dto.ProposalResponse {
	return &dto.ProposalResponse{
		ProposalID:           proposal.ID,
		ParticipatorySpaceID: proposal.ParticipatorySpaceID,
		AuthorID:             proposal.AuthorID,
		Title:                proposal.Title,
		Body:                 proposal.Body,
		CreatedAt:            proposal.CreatedAt,
		UpdatedAt:            proposal.UpdatedAt,
	}
}
