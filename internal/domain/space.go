package domain

import "github.com/google/uuid"

// ParticipatorySpace scopes content and its moderation. Spaces are
// administered by another service; this one reads them for scoping and
// for routing moderation notifications.
type ParticipatorySpace struct {
	BaseModel
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index:idx_spaces_organization_id" json:"organization_id"`
	Slug           string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_spaces_slug" json:"slug"`
	Title          string    `gorm:"type:varchar(255);not null" json:"title"`
	DefaultLocale  string    `gorm:"type:varchar(10);not null;default:'en'" json:"default_locale"`
}

// TableName specifies the table name for ParticipatorySpace
func (ParticipatorySpace) TableName() string {
	return "participatory_spaces"
}

// SpaceModerator grants a user the moderator role in a space
type SpaceModerator struct {
	BaseModel
	ParticipatorySpaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_space_moderators_space_user,priority:1" json:"participatory_space_id"`
	UserID               uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_space_moderators_space_user,priority:2" json:"user_id"`
}

// TableName specifies the table name for SpaceModerator
func (SpaceModerator) TableName() string {
	return "space_moderators"
}
