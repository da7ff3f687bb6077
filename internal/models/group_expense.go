package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"splitledger_app_echo/internal/ledger"
)

// GroupExpense represents an expense shared inside a group
type GroupExpense struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	GroupID     uint            `gorm:"index" json:"group_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount"`
	Currency    string          `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	Description string          `gorm:"type:varchar(255)" json:"description,omitempty"`
	PayerID     uint            `gorm:"index" json:"payer_id"`

	// Relationships
	Group  Group               `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Payer  User                `gorm:"foreignKey:PayerID" json:"payer,omitempty"`
	Splits []GroupExpenseSplit `gorm:"foreignKey:GroupExpenseID" json:"splits,omitempty"`
}

// GroupExpenseSplit records one participant's slice of a group expense
type GroupExpenseSplit struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	GroupExpenseID uint `gorm:"index" json:"group_expense_id"`
	UserID         uint `gorm:"index" json:"user_id"`

	SplitType  ledger.SplitType `gorm:"type:varchar(20)" json:"split_type"`
	PaidAmount decimal.Decimal  `gorm:"type:decimal(15,2)" json:"paid_amount"`
	AmountOwed decimal.Decimal  `gorm:"type:decimal(15,2)" json:"amount_owed"`
	Percentage decimal.Decimal  `gorm:"type:decimal(15,2)" json:"percentage"`
	Shares     decimal.Decimal  `gorm:"type:decimal(15,2)" json:"shares"`

	// Relationships
	GroupExpense GroupExpense `gorm:"foreignKey:GroupExpenseID" json:"group_expense,omitempty"`
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
