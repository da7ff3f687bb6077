package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Settlement records a payment between two users to clear debt. GroupID
// is zero for settlements outside of any group.
type Settlement struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// Reference is an opaque identifier handed to external payment
	// surfaces (receipts, reminder emails).
	Reference uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"reference"`

	GroupID    uint            `gorm:"index" json:"group_id,omitempty"`
	FromUserID uint            `gorm:"index" json:"from_user_id"`
	ToUserID   uint            `gorm:"index" json:"to_user_id"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount"`
	Note       string          `gorm:"type:varchar(255)" json:"note,omitempty"`

	// Relationships
	FromUser User `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUser   User `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`
}

func (s *Settlement) BeforeCreate(tx *gorm.DB) error {
	if s.Reference == uuid.Nil {
		s.Reference = uuid.New()
	}
	return nil
}
