package dto

import (
	"time"

	"github.com/google/uuid"
)

// ReportRequest is the form for reporting a reportable entity
type ReportRequest struct {
	ReportableType string    `json:"reportableType" binding:"required"`
	ReportableID   uuid.UUID `json:"reportableId" binding:"required"`
	Reason         string    `json:"reason" binding:"required"`
}

// UpstreamStateRequest sets the upstream moderation state of a record.
// Issued by the upstream moderation authority through the admin API.
type UpstreamStateRequest struct {
	State string `json:"state" binding:"required"`
}

// ModerationResponse represents a moderation record in admin listings
type ModerationResponse struct {
	ModerationID         uuid.UUID  `json:"moderationId"`
	ReportableType       string     `json:"reportableType"`
	ReportableID         uuid.UUID  `json:"reportableId"`
	ParticipatorySpaceID uuid.UUID  `json:"participatorySpaceId"`
	UpstreamModeration   string     `json:"upstreamModeration"`
	ReportCount          int        `json:"reportCount"`
	HiddenAt             *time.Time `json:"hiddenAt,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
}
