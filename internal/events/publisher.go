package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"participation-api/internal/domain"
	"participation-api/internal/metrics"
	"participation-api/internal/repository"
)

// Event names published by this service
const (
	EventCommentCreated   = "comments.comment_created"
	EventProposalCreated  = "proposals.proposal_created"
	EventModerationDigest = "moderation.pending_digest"
)

// Event classes identify the renderer's formatting logic for an event
const (
	EventClassCommentCreated   = "comments.CommentCreatedEvent"
	EventClassProposalCreated  = "proposals.ProposalCreatedEvent"
	EventClassModerationDigest = "moderation.PendingDigestEvent"
)

// Extra payload keys understood by the renderer
const (
	ExtraCommentID       = "comment_id"
	ExtraModerationEvent = "moderation_event"
	ExtraProcessSlug     = "process_slug"
	ExtraLocale          = "locale"
	ExtraPendingCount    = "pending_count"
)

// Event is a notification fan-out request. RecipientIDs must already be
// deduplicated by the caller; the publisher attempts delivery for every
// entry as-is.
type Event struct {
	Name         string                 `json:"name"`
	EventClass   string                 `json:"eventClass"`
	Resource     domain.ResourceRef     `json:"resource"`
	RecipientIDs []uuid.UUID            `json:"recipientIds"`
	Extra        map[string]interface{} `json:"extra,omitempty"`
	OccurredAt   string                 `json:"occurredAt,omitempty"`
}

// Publisher delivers events to the external notification renderer
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// httpPublisher posts events to the renderer and fans them out to Redis
// channels for in-app consumers
type httpPublisher struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	redis      *redis.Client
	deliveries repository.DeliveryRepository
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewPublisher creates a publisher backed by the renderer's HTTP API.
// redisClient and deliveries are optional; nil disables the in-app
// fan-out and the delivery log respectively.
func NewPublisher(
	baseURL string,
	apiKey string,
	timeout time.Duration,
	redisClient *redis.Client,
	deliveries repository.DeliveryRepository,
	logger *zap.Logger,
	m *metrics.Metrics,
) Publisher {
	return &httpPublisher{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		redis:      redisClient,
		deliveries: deliveries,
		logger:     logger,
		metrics:    m,
	}
}

// Publish delivers an event to the renderer. Delivery is best-effort:
// network failures and renderer errors are logged and recorded but never
// returned, so a failed fan-out cannot undo the write that triggered it.
func (p *httpPublisher) Publish(ctx context.Context, event Event) error {
	if event.OccurredAt == "" {
		event.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}

	jsonBody, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event",
			zap.Error(err),
			zap.String("event", event.Name),
		)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	succeeded := p.sendToRenderer(ctx, event, jsonBody)

	// In-app consumers listen on a channel per recipient
	p.fanOutToRedis(ctx, event, jsonBody)

	p.recordDelivery(ctx, event, jsonBody, succeeded)

	if p.metrics != nil {
		p.metrics.IncrementNotificationPublished(event.Name, succeeded)
	}

	return nil
}

func (p *httpPublisher) sendToRenderer(ctx context.Context, event Event, jsonBody []byte) bool {
	url := fmt.Sprintf("%s/api/internal/events", p.baseURL)

	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		p.logger.Error("Failed to create renderer request", zap.Error(err))
		return false
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-API-Key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if p.metrics != nil {
		p.metrics.RecordExternalAPICall(url, "POST", statusCode, duration, err)
	}

	if err != nil {
		p.logger.Error("Failed to deliver event to renderer",
			zap.Error(err),
			zap.String("event", event.Name),
			zap.Int("recipients", len(event.RecipientIDs)),
			zap.Duration("duration", duration),
		)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		p.logger.Info("Event delivered to renderer",
			zap.String("event", event.Name),
			zap.Int("recipients", len(event.RecipientIDs)),
			zap.Duration("duration", duration),
		)
		return true
	}

	p.logger.Warn("Renderer returned non-success status",
		zap.Int("status_code", resp.StatusCode),
		zap.String("event", event.Name),
		zap.Duration("duration", duration),
	)
	return false
}

func (p *httpPublisher) fanOutToRedis(ctx context.Context, event Event, jsonBody []byte) {
	if p.redis == nil {
		return
	}

	for _, recipientID := range event.RecipientIDs {
		channel := fmt.Sprintf("notifications:user:%s", recipientID.String())
		if err := p.redis.Publish(ctx, channel, jsonBody).Err(); err != nil {
			p.logger.Error("Failed to publish event to redis channel",
				zap.Error(err),
				zap.String("event", event.Name),
				zap.String("channel", channel),
			)
		}
	}
}

func (p *httpPublisher) recordDelivery(ctx context.Context, event Event, jsonBody []byte, succeeded bool) {
	if p.deliveries == nil {
		return
	}

	delivery := &domain.NotificationDelivery{
		EventName:      event.Name,
		RecipientCount: len(event.RecipientIDs),
		Succeeded:      succeeded,
		Payload:        jsonBody,
	}
	if err := p.deliveries.Create(ctx, delivery); err != nil {
		p.logger.Warn("Failed to record notification delivery",
			zap.Error(err),
			zap.String("event", event.Name),
		)
	}
}

// NoOpPublisher is a no-op implementation for when notifications are disabled
type NoOpPublisher struct{}

// NewNoOpPublisher creates a publisher that drops every event
func NewNoOpPublisher() Publisher {
	return &NoOpPublisher{}
}

// Publish implements Publisher
func (p *NoOpPublisher) Publish(ctx context.Context, event Event) error {
	return nil
}
