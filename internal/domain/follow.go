package domain

import "github.com/google/uuid"

// Follow subscribes a user to updates on a followable entity.
// Polymorphic: FollowableType/FollowableID reference multiple tables, so
// no foreign key constraint is declared.
type Follow struct {
	BaseModel
	UserID         uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_follows_user_followable,priority:1" json:"user_id"`
	FollowableType ResourceType `gorm:"type:varchar(50);not null;uniqueIndex:uq_follows_user_followable,priority:2;index:idx_follows_followable,priority:1" json:"followable_type"`
	FollowableID   uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_follows_user_followable,priority:3;index:idx_follows_followable,priority:2" json:"followable_id"`
}

// TableName specifies the table name for Follow
func (Follow) TableName() string {
	return "follows"
}
