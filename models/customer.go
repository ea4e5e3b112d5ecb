package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the lifecycle stage of a reservation.
type Status string

const (
	StatusPending          Status = "pending"
	StatusAwaitingTransfer Status = "awaitingTransfer"
	StatusReadyForPickup   Status = "readyForPickup"
	StatusCompleted        Status = "completed"
)

// Store identifies a physical store. StoreA and StoreB double as workspace
// (tenant) IDs; LocalStore is only ever a sourceStore value, meaning the pair
// was sold from the workspace's own stock.
type Store string

const (
	StoreA     Store = "StoreA"
	StoreB     Store = "StoreB"
	LocalStore Store = "LocalStore"
)

// ArchiveReason explains why a reservation left the active flow.
type ArchiveReason string

const (
	ReasonCustomerDeclined ArchiveReason = "customer_declined"
	ReasonNoStock          ArchiveReason = "no_stock"
	ReasonExceededWaitTime ArchiveReason = "exceeded_wait_time"
	ReasonWrongSize        ArchiveReason = "wrong_size"
	ReasonOther            ArchiveReason = "other"
)

// Customer is a shoe reservation request and its workflow state.
type Customer struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	WorkspaceID     string    `gorm:"size:20;index;not null" json:"workspaceId"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index" json:"createdByUserId"`

	// Request attributes, immutable after registration.
	Name        string `gorm:"not null" json:"name"`
	Phone       string `gorm:"not null" json:"phone"`
	Model       string `gorm:"not null" json:"model"`
	Reference   string `json:"reference"`
	Size        string `gorm:"size:10" json:"size"`
	Color       string `json:"color"`
	Salesperson string `json:"salesperson"`

	Status          Status `gorm:"size:30;not null;default:'pending'" json:"status"`
	ConsultingStore *Store `gorm:"size:20" json:"consultingStore,omitempty"`
	StoreHasStock   *bool  `json:"storeHasStock,omitempty"`
	SourceStore     *Store `gorm:"size:20" json:"sourceStore,omitempty"`

	Archived      bool           `gorm:"not null;default:false" json:"archived"`
	ArchiveReason *ArchiveReason `gorm:"size:30" json:"archiveReason,omitempty"`
	Notes         string         `gorm:"type:text" json:"notes"`

	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	ContactedAt   *time.Time `json:"contactedAt,omitempty"`
	TransferredAt *time.Time `json:"transferredAt,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	ArchivedAt    *time.Time `json:"archivedAt,omitempty"`

	// Version guards every workflow write: updates carry WHERE version = ?
	// so a lost race surfaces as a conflict instead of a silent overwrite.
	Version int `gorm:"not null;default:1" json:"version"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Version == 0 {
		c.Version = 1
	}
	return nil
}

func (Customer) TableName() string {
	return "customers"
}

// Active reports whether the reservation is still in the working flow.
func (c *Customer) Active() bool {
	return !c.Archived && c.Status != StatusCompleted
}

// Transferred reports whether the pair ever came from the sibling store.
// It is a historical tag, not a lifecycle state.
func (c *Customer) Transferred() bool {
	return c.SourceStore != nil && *c.SourceStore != LocalStore
}

// ValidConsultingStore reports whether s can be asked for stock.
func ValidConsultingStore(s Store) bool {
	return s == StoreA || s == StoreB
}

// ValidArchiveReason reports whether r is one of the fixed archive reasons.
func ValidArchiveReason(r ArchiveReason) bool {
	switch r {
	case ReasonCustomerDeclined, ReasonNoStock, ReasonExceededWaitTime, ReasonWrongSize, ReasonOther:
		return true
	}
	return false
}
