package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageKind names the notifications the workflow can compose.
type MessageKind string

const (
	KindStoreInquiry   MessageKind = "store_inquiry"
	KindTransferOffer  MessageKind = "transfer_offer"
	KindReadyForPickup MessageKind = "ready_for_pickup"
)

// MessageTemplate is a per-workspace override for a notification body.
// Placeholders: [ClientName], [Model], [Reference], [Size], [Color], [Store].
type MessageTemplate struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key"`
	WorkspaceID string      `gorm:"size:20;index;not null"`
	Kind        MessageKind `gorm:"size:30;not null"`
	Body        string      `gorm:"type:text;not null"`
	IsActive    bool        `gorm:"default:true"`
	gorm.Model
}

func (t *MessageTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
