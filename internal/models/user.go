package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered user of the expense tracker
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name         string `gorm:"type:varchar(255)" json:"name"`
	Email        string `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	PasswordHash string `gorm:"type:varchar(255)" json:"-"`

	// Relationships
	Groups   []Group   `gorm:"many2many:group_members;" json:"groups,omitempty"`
	Expenses []Expense `gorm:"foreignKey:PayerID" json:"expenses,omitempty"`
}
