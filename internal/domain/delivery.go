package domain

import (
	"gorm.io/datatypes"
)

// NotificationDelivery is an operator-facing log of event publish
// attempts. The dispatcher is best-effort, so this log is the only place
// a lost fan-out shows up besides the service logs.
type NotificationDelivery struct {
	BaseModel
	EventName      string         `gorm:"type:varchar(255);not null;index:idx_notification_deliveries_event" json:"event_name"`
	RecipientCount int            `gorm:"not null" json:"recipient_count"`
	Succeeded      bool           `gorm:"not null" json:"succeeded"`
	Payload        datatypes.JSON `gorm:"type:jsonb" json:"payload"`
}

// TableName specifies the table name for NotificationDelivery
func (NotificationDelivery) TableName() string {
	return "notification_deliveries"
}
