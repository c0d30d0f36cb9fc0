package domain

import (
	"time"

	"github.com/google/uuid"
)

// UpstreamModeration is the state assigned by the upstream moderation authority
type UpstreamModeration string

const (
	UpstreamUnmoderate UpstreamModeration = "unmoderate"
	UpstreamAuthorized UpstreamModeration = "authorized"
	UpstreamRefused    UpstreamModeration = "refused"
)

// Valid reports whether s is a known upstream moderation state
func (s UpstreamModeration) Valid() bool {
	switch s {
	case UpstreamUnmoderate, UpstreamAuthorized, UpstreamRefused:
		return true
	}
	return false
}

// Moderation tracks the moderation state of a single reportable entity.
// Two authorities write to it independently: the upstream moderation
// authority owns UpstreamModeration, the local report workflow owns
// ReportCount and HiddenAt. There is at most one row per reportable.
type Moderation struct {
	BaseModel
	ReportableType       ResourceType       `gorm:"type:varchar(50);not null;uniqueIndex:uq_moderations_reportable,priority:1" json:"reportable_type"`
	ReportableID         uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:uq_moderations_reportable,priority:2" json:"reportable_id"`
	ParticipatorySpaceID uuid.UUID          `gorm:"type:uuid;not null;index:idx_moderations_space_id" json:"participatory_space_id"`
	UpstreamModeration   UpstreamModeration `gorm:"type:varchar(20);not null;default:'unmoderate';index:idx_moderations_upstream" json:"upstream_moderation"`
	ReportCount          int                `gorm:"not null;default:0" json:"report_count"`
	HiddenAt             *time.Time         `gorm:"type:timestamp" json:"hidden_at"`
}

// TableName specifies the table name for Moderation
func (Moderation) TableName() string {
	return "moderations"
}

// Hidden reports whether the local report workflow has hidden the entity
func (m *Moderation) Hidden() bool {
	return m.HiddenAt != nil
}

// IsVisible decides whether a reportable entity appears in default listings.
// Both authorities must clear the content: the upstream state must be
// authorized and the local workflow must not have hidden it. A missing
// record fails closed.
func IsVisible(m *Moderation) bool {
	if m == nil {
		return false
	}
	return m.UpstreamModeration == UpstreamAuthorized && m.HiddenAt == nil
}
