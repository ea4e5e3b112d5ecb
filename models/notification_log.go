// models/notification_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationLog records every composed WhatsApp link. Composition only:
// the system hands a wa.me URL to the operator and never learns whether the
// message was sent.
type NotificationLog struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key"`
	WorkspaceID string      `gorm:"size:20;index;not null"`
	CustomerID  uuid.UUID   `gorm:"type:uuid;index;not null"`
	Kind        MessageKind `gorm:"size:30"`
	Recipient   string      `gorm:"size:20"` // digits with country code
	Message     string      `gorm:"type:text"`
	URL         string      `gorm:"type:text"`
	ComposedAt  time.Time
	gorm.Model
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	n.ID = uuid.New()
	return
}
