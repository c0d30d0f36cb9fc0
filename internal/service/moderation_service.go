package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"participation-api/internal/domain"
	"participation-api/internal/dto"
	"participation-api/internal/repository"
	"participation-api/internal/response"
)

// ModerationService defines the interface for report and hide workflows
type ModerationService interface {
	Report(ctx context.Context, reporterID uuid.UUID, req *dto.ReportRequest) (*dto.ModerationResponse, error)
	Hide(ctx context.Context, moderationID uuid.UUID) (*dto.ModerationResponse, error)
	Unhide(ctx context.Context, moderationID uuid.UUID) (*dto.ModerationResponse, error)
	SetUpstreamState(ctx context.Context, moderationID uuid.UUID, req *dto.UpstreamStateRequest) (*dto.ModerationResponse, error)
	ListPending(ctx context.Context) ([]*dto.ModerationResponse, error)
}

// moderationServiceImpl is the implementation of ModerationService
type moderationServiceImpl struct {
	moderationRepo repository.ModerationRepository
	logger         *zap.Logger
}

// NewModerationService creates a new instance of ModerationService
func NewModerationService(moderationRepo repository.ModerationRepository, logger *zap.Logger) ModerationService {
	return &moderationServiceImpl{
		moderationRepo: moderationRepo,
		logger:         logger,
	}
}

// Report registers a report against a reportable entity. The counter is
// bumped atomically in the database, so concurrent reports all count.
// Reporting alone never hides content.
func (s *moderationServiceImpl) Report(ctx context.Context, reporterID uuid.UUID, req *dto.ReportRequest) (*dto.ModerationResponse, error) {
	reportableType, ok := domain.ParseResourceType(req.ReportableType)
	if !ok {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid reportable type", req.ReportableType)
	}
	if req.Reason == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Report reason must not be empty", "")
	}

	moderation, err := s.moderationRepo.FindByReportable(ctx, domain.ResourceRef{Type: reportableType, ID: req.ReportableID})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Moderation record not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load moderation record", err.Error())
	}

	if err := s.moderationRepo.IncrementReportCount(ctx, moderation.ID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to register report", err.Error())
	}

	s.logger.Info("Content reported",
		zap.String("moderation_id", moderation.ID.String()),
		zap.String("reportable_type", string(reportableType)),
		zap.String("reporter_id", reporterID.String()))

	return s.reload(ctx, moderation.ID)
}

// Hide hides the reportable entity behind a moderation record. Idempotent:
// hiding an already hidden record keeps its original hidden_at.
func (s *moderationServiceImpl) Hide(ctx context.Context, moderationID uuid.UUID) (*dto.ModerationResponse, error) {
	if _, err := s.findByID(ctx, moderationID); err != nil {
		return nil, err
	}
	if err := s.moderationRepo.Hide(ctx, moderationID, time.Now()); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to hide content", err.Error())
	}
	return s.reload(ctx, moderationID)
}

// Unhide clears the local hide mark. Visibility still depends on the
// upstream moderation state.
func (s *moderationServiceImpl) Unhide(ctx context.Context, moderationID uuid.UUID) (*dto.ModerationResponse, error) {
	if _, err := s.findByID(ctx, moderationID); err != nil {
		return nil, err
	}
	if err := s.moderationRepo.Unhide(ctx, moderationID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to unhide content", err.Error())
	}
	return s.reload(ctx, moderationID)
}

// SetUpstreamState records the decision of the upstream moderation
// authority. Only terminal decisions are accepted: a record cannot be
// moved back to the pending state through this API.
func (s *moderationServiceImpl) SetUpstreamState(ctx context.Context, moderationID uuid.UUID, req *dto.UpstreamStateRequest) (*dto.ModerationResponse, error) {
	state := domain.UpstreamModeration(req.State)
	if state != domain.UpstreamAuthorized && state != domain.UpstreamRefused {
		return nil, response.NewAppError(response.ErrCodeValidation, "Upstream state must be authorized or refused", req.State)
	}

	if err := s.moderationRepo.SetUpstreamState(ctx, moderationID, state); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Moderation record not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to set upstream state", err.Error())
	}

	s.logger.Info("Upstream moderation decision recorded",
		zap.String("moderation_id", moderationID.String()),
		zap.String("state", string(state)))

	return s.reload(ctx, moderationID)
}

// ListPending lists every record still awaiting an upstream decision
func (s *moderationServiceImpl) ListPending(ctx context.Context) ([]*dto.ModerationResponse, error) {
	moderations, err := s.moderationRepo.FindPendingOlderThan(ctx, 0)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch pending moderations", err.Error())
	}

	responses := make([]*dto.ModerationResponse, len(moderations))
	for i, m := range moderations {
		responses[i] = toModerationResponse(m)
	}
	return responses, nil
}

func (s *moderationServiceImpl) findByID(ctx context.Context, id uuid.UUID) (*domain.Moderation, error) {
	moderation, err := s.moderationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Moderation record not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load moderation record", err.Error())
	}
	return moderation, nil
}

func (s *moderationServiceImpl) reload(ctx context.Context, id uuid.UUID) (*dto.ModerationResponse, error) {
	moderation, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toModerationResponse(moderation), nil
}

// toModerationResponse converts domain.Moderation to dto.ModerationResponse
func toModerationResponse(m *domain.Moderation) *dto.ModerationResponse {
	return &dto.ModerationResponse{
		ModerationID:         m.ID,
		ReportableType:       string(m.ReportableType),
		ReportableID:         m.ReportableID,
		ParticipatorySpaceID: m.ParticipatorySpaceID,
		UpstreamModeration:   string(m.UpstreamModeration),
		ReportCount:          m.ReportCount,
		HiddenAt:             m.HiddenAt,
		CreatedAt:            m.CreatedAt,
	}
}
