package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"participation-api/internal/domain"
	"participation-api/internal/events"
	"participation-api/internal/metrics"
	"participation-api/internal/repository"
)

// DigestJob periodically reminds space moderators about content that has
// been waiting for an upstream decision
type DigestJob struct {
	moderationRepo repository.ModerationRepository
	spaceRepo      repository.SpaceRepository
	publisher      events.Publisher
	metrics        *metrics.Metrics
	logger         *zap.Logger
	minAge         time.Duration
}

// NewDigestJob creates a new DigestJob instance
func NewDigestJob(
	moderationRepo repository.ModerationRepository,
	spaceRepo repository.SpaceRepository,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *zap.Logger,
	minAge time.Duration,
) *DigestJob {
	return &DigestJob{
		moderationRepo: moderationRepo,
		spaceRepo:      spaceRepo,
		publisher:      publisher,
		metrics:        m,
		logger:         logger,
		minAge:         minAge,
	}
}

// Run executes the digest job. It groups stale pending moderation records
// by participatory space and publishes one digest event per space to its
// moderators.
func (j *DigestJob) Run() {
	ctx := context.Background()

	j.logger.Info("Starting moderation digest job",
		zap.Duration("min_age", j.minAge),
	)

	pending, err := j.moderationRepo.FindPendingOlderThan(ctx, j.minAge)
	if err != nil {
		j.logger.Error("Failed to find pending moderation records",
			zap.Error(err),
		)
		return
	}

	if j.metrics != nil {
		if total, err := j.moderationRepo.CountPending(ctx); err == nil {
			j.metrics.SetModerationsPendingTotal(total)
		}
	}

	if len(pending) == 0 {
		j.logger.Info("No stale pending moderation records found")
		return
	}

	// FindPendingOlderThan returns records oldest first, so the first
	// entry per space is that space's oldest pending item
	bySpace := make(map[uuid.UUID][]*domain.Moderation)
	for _, m := range pending {
		bySpace[m.ParticipatorySpaceID] = append(bySpace[m.ParticipatorySpaceID], m)
	}

	publishedCount := 0
	failCount := 0

	for spaceID, records := range bySpace {
		if err := j.publishDigest(ctx, spaceID, records); err != nil {
			failCount++
			continue
		}
		publishedCount++
	}

	j.logger.Info("Moderation digest job completed",
		zap.Int("total_pending", len(pending)),
		zap.Int("spaces_notified", publishedCount),
		zap.Int("spaces_failed", failCount),
	)
}

func (j *DigestJob) publishDigest(ctx context.Context, spaceID uuid.UUID, records []*domain.Moderation) error {
	space, err := j.spaceRepo.FindByID(ctx, spaceID)
	if err != nil {
		j.logger.Error("Failed to load participatory space for digest",
			zap.String("space_id", spaceID.String()),
			zap.Error(err),
		)
		return err
	}

	moderatorIDs, err := j.spaceRepo.FindModeratorIDs(ctx, spaceID)
	if err != nil {
		j.logger.Error("Failed to load moderators for digest",
			zap.String("space_id", spaceID.String()),
			zap.Error(err),
		)
		return err
	}
	if len(moderatorIDs) == 0 {
		j.logger.Warn("Space has pending moderations but no moderators",
			zap.String("space_id", spaceID.String()),
			zap.Int("pending", len(records)),
		)
		return nil
	}

	oldest := records[0]
	event := events.Event{
		Name:       events.EventModerationDigest,
		EventClass: events.EventClassModerationDigest,
		Resource: domain.ResourceRef{
			Type: oldest.ReportableType,
			ID:   oldest.ReportableID,
		},
		RecipientIDs: moderatorIDs,
		Extra: map[string]interface{}{
			events.ExtraModerationEvent: true,
			events.ExtraProcessSlug:     space.Slug,
			events.ExtraLocale:          space.DefaultLocale,
			events.ExtraPendingCount:    len(records),
		},
	}

	if err := j.publisher.Publish(ctx, event); err != nil {
		j.logger.Error("Failed to publish moderation digest",
			zap.String("space_id", spaceID.String()),
			zap.Error(err),
		)
		return err
	}

	j.logger.Debug("Published moderation digest",
		zap.String("space_id", spaceID.String()),
		zap.Int("pending", len(records)),
		zap.Int("recipients", len(moderatorIDs)),
	)
	return nil
}
