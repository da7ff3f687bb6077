package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"splitledger_app_echo/internal/ledger"
)

// Expense represents an expense shared outside of any group
type Expense struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Amount      decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount"`
	Currency    string          `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	Description string          `gorm:"type:varchar(255)" json:"description,omitempty"`
	PayerID     uint            `gorm:"index" json:"payer_id"`

	// Relationships
	Payer  User           `gorm:"foreignKey:PayerID" json:"payer,omitempty"`
	Splits []ExpenseSplit `gorm:"foreignKey:ExpenseID" json:"splits,omitempty"`
}

// ExpenseSplit records one participant's slice of an individual expense.
// PaidAmount is what they actually paid, AmountOwed is what the split
// allocator computed they owe.
type ExpenseSplit struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	ExpenseID uint `gorm:"index" json:"expense_id"`
	UserID    uint `gorm:"index" json:"user_id"`

	SplitType  ledger.SplitType `gorm:"type:varchar(20)" json:"split_type"`
	PaidAmount decimal.Decimal  `gorm:"type:decimal(15,2)" json:"paid_amount"`
	AmountOwed decimal.Decimal  `gorm:"type:decimal(15,2)" json:"amount_owed"`
	Percentage decimal.Decimal  `gorm:"type:decimal(15,2)" json:"percentage"`
	Shares     decimal.Decimal  `gorm:"type:decimal(15,2)" json:"shares"`

	// Relationships
	Expense Expense `gorm:"foreignKey:ExpenseID" json:"expense,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
