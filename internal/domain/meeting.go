package domain

import (
	"time"

	"github.com/google/uuid"
)

// Meeting represents a physical or online meeting users can comment on.
// Meetings are managed elsewhere; this service only needs them as a
// commentable kind.
type Meeting struct {
	BaseModel
	ParticipatorySpaceID uuid.UUID   `gorm:"type:uuid;not null;index:idx_meetings_space_id" json:"participatory_space_id"`
	Title                string      `gorm:"type:varchar(255);not null" json:"title"`
	StartsAt             *time.Time  `gorm:"type:timestamp" json:"starts_at"`
	FollowerIDs          []uuid.UUID `gorm:"-" json:"follower_ids,omitempty"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// Ref implements Commentable
func (m *Meeting) Ref() ResourceRef {
	return ResourceRef{Type: ResourceTypeMeeting, ID: m.ID}
}

// RootRef implements Commentable; a meeting is always a thread root
func (m *Meeting) RootRef() ResourceRef {
	return m.Ref()
}

// SpaceID implements Commentable
func (m *Meeting) SpaceID() uuid.UUID {
	return m.ParticipatorySpaceID
}

// UsersToNotifyOnCommentCreated implements Commentable: the meeting's followers
func (m *Meeting) UsersToNotifyOnCommentCreated() []uuid.UUID {
	return m.FollowerIDs
}
