package models

import (
	"time"

	"gorm.io/gorm"
)

// Group represents a set of users who share expenses
type Group struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name string `gorm:"type:varchar(255)" json:"name"`
	// Currency is the group's base currency; expenses recorded in another
	// currency are converted to this one.
	Currency string `gorm:"type:varchar(3);default:'USD'" json:"currency"`

	// Relationships
	Members       []User         `gorm:"many2many:group_members;" json:"members,omitempty"`
	GroupExpenses []GroupExpense `gorm:"foreignKey:GroupID" json:"group_expenses,omitempty"`
}
