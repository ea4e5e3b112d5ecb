package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale is the terminal record written when a reservation is completed with
// payment details. Optional: completing without them leaves no Sale row.
type Sale struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	WorkspaceID     string    `gorm:"size:20;index;not null" json:"workspaceId"`
	CustomerID      uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index" json:"createdByUserId"`

	SaleNumber string    `gorm:"uniqueIndex;not null" json:"saleNumber"`
	SaleDate   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"saleDate"`

	Amount   float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Discount float64 `gorm:"type:decimal(10,2);default:0.0" json:"discount"`
	Total    float64 `gorm:"type:decimal(10,2);not null" json:"total"`

	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes"`
}

func (s *Sale) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
