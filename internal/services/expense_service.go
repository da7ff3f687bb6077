package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"splitledger_app_echo/internal/ledger"
	"splitledger_app_echo/internal/models"
)

// ExpenseAction selects what a group expense request does.
type ExpenseAction string

const (
	ExpenseActionAdd    ExpenseAction = "add"
	ExpenseActionUpdate ExpenseAction = "update"
	ExpenseActionRemove ExpenseAction = "remove"
)

var ErrInvalidExpenseAction = errors.New("invalid expense action")

// ParticipantInput is one participant's contribution to an expense. Only
// the field matching the split type is consulted by the allocator.
type ParticipantInput struct {
	UserID     uint
	AmountPaid decimal.Decimal
	Percentage decimal.Decimal
	Shares     decimal.Decimal
}

// CreateExpenseInput describes a new expense. GroupID zero means an
// individual (non-group) expense.
type CreateExpenseInput struct {
	Amount       decimal.Decimal
	Currency     string
	Description  string
	GroupID      uint
	PayerID      uint
	SplitType    ledger.SplitType
	Participants []ParticipantInput
}

// GroupExpenseActionInput describes an add/update/remove request against
// a group's expenses.
type GroupExpenseActionInput struct {
	Action       ExpenseAction
	ExpenseID    uint
	Amount       decimal.Decimal
	Currency     string
	Description  string
	PayerID      uint
	SplitType    ledger.SplitType
	Participants []ParticipantInput
}

// ParticipantDetail is one participant's computed slice in an expense view.
type ParticipantDetail struct {
	UserID     uint            `json:"user_id"`
	Name       string          `json:"name"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
	AmountOwed decimal.Decimal `json:"amount_owed"`
}

// ExpenseDetail is the unified view of an individual or group expense.
type ExpenseDetail struct {
	ID           uint                `json:"id"`
	Kind         string              `json:"type"` // "individual" or "group"
	GroupID      uint                `json:"group_id,omitempty"`
	PayerID      uint                `json:"payer_id"`
	Amount       decimal.Decimal     `json:"amount"`
	Currency     string              `json:"currency"`
	Description  string              `json:"description,omitempty"`
	SplitType    ledger.SplitType    `json:"split_type"`
	CreatedAt    time.Time           `json:"created_at"`
	Participants []ParticipantDetail `json:"participants"`
}

// ExpenseService creates and updates expenses. All split math goes
// through ledger.ComputeSplits, whether the expense is individual or
// group scoped.
type ExpenseService struct {
	db       *gorm.DB
	currency *CurrencyService
}

func NewExpenseService(db *gorm.DB, currency *CurrencyService) *ExpenseService {
	return &ExpenseService{db: db, currency: currency}
}

func contributions(participants []ParticipantInput) []ledger.Contribution {
	out := make([]ledger.Contribution, 0, len(participants))
	for _, p := range participants {
		out = append(out, ledger.Contribution{
			UserID:     p.UserID,
			Paid:       p.AmountPaid,
			Percentage: p.Percentage,
			Shares:     p.Shares,
		})
	}
	return out
}

func participantIDs(participants []ParticipantInput) []uint {
	ids := make([]uint, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.UserID)
	}
	return ids
}

// CreateExpense records an expense and its computed splits. Group
// expenses recorded in a currency other than the group's base currency
// are converted before allocation.
func (s *ExpenseService) CreateExpense(ctx context.Context, input CreateExpenseInput) (*ExpenseDetail, error) {
	if _, err := findUsers(ctx, s.db, append(participantIDs(input.Participants), input.PayerID)); err != nil {
		return nil, err
	}

	amount := input.Amount
	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	if input.GroupID != 0 {
		var group models.Group
		err := s.db.WithContext(ctx).First(&group, input.GroupID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to fetch group: %w", err)
		}
		if currency != group.Currency && s.currency != nil {
			converted, err := s.currency.Convert(ctx, amount, currency, group.Currency)
			if err != nil {
				return nil, err
			}
			amount = converted
			currency = group.Currency
		}
	}

	allocations, err := ledger.ComputeSplits(amount, input.SplitType, contributions(input.Participants))
	if err != nil {
		return nil, err
	}

	if input.GroupID != 0 {
		return s.createGroupExpense(ctx, input, amount, currency, allocations)
	}
	return s.createIndividualExpense(ctx, input, amount, currency, allocations)
}

func (s *ExpenseService) createIndividualExpense(ctx context.Context, input CreateExpenseInput, amount decimal.Decimal, currency string, allocations []ledger.Allocation) (*ExpenseDetail, error) {
	expense := &models.Expense{
		Amount:      amount,
		Currency:    currency,
		Description: input.Description,
		PayerID:     input.PayerID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return fmt.Errorf("failed to create expense: %w", err)
		}
		splits := buildSplits(input.SplitType, input.Participants, allocations)
		for i := range splits {
			split := models.ExpenseSplit{
				ExpenseID:  expense.ID,
				UserID:     splits[i].UserID,
				SplitType:  splits[i].SplitType,
				PaidAmount: splits[i].PaidAmount,
				AmountOwed: splits[i].AmountOwed,
				Percentage: splits[i].Percentage,
				Shares:     splits[i].Shares,
			}
			if err := tx.Create(&split).Error; err != nil {
				return fmt.Errorf("failed to create expense split: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetExpenseByID(ctx, expense.ID)
}

func (s *ExpenseService) createGroupExpense(ctx context.Context, input CreateExpenseInput, amount decimal.Decimal, currency string, allocations []ledger.Allocation) (*ExpenseDetail, error) {
	expense := &models.GroupExpense{
		GroupID:     input.GroupID,
		Amount:      amount,
		Currency:    currency,
		Description: input.Description,
		PayerID:     input.PayerID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return fmt.Errorf("failed to create group expense: %w", err)
		}
		splits := buildSplits(input.SplitType, input.Participants, allocations)
		for i := range splits {
			split := models.GroupExpenseSplit{
				GroupExpenseID: expense.ID,
				UserID:         splits[i].UserID,
				SplitType:      splits[i].SplitType,
				PaidAmount:     splits[i].PaidAmount,
				AmountOwed:     splits[i].AmountOwed,
				Percentage:     splits[i].Percentage,
				Shares:         splits[i].Shares,
			}
			if err := tx.Create(&split).Error; err != nil {
				return fmt.Errorf("failed to create group expense split: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.getGroupExpenseDetail(ctx, expense.ID)
}

// splitRecord is the common shape of an individual or group split row.
type splitRecord struct {
	UserID     uint
	SplitType  ledger.SplitType
	PaidAmount decimal.Decimal
	AmountOwed decimal.Decimal
	Percentage decimal.Decimal
	Shares     decimal.Decimal
}

func buildSplits(splitType ledger.SplitType, participants []ParticipantInput, allocations []ledger.Allocation) []splitRecord {
	records := make([]splitRecord, 0, len(participants))
	for i, p := range participants {
		records = append(records, splitRecord{
			UserID:     p.UserID,
			SplitType:  splitType,
			PaidAmount: p.AmountPaid,
			AmountOwed: allocations[i].Owed,
			Percentage: p.Percentage,
			Shares:     p.Shares,
		})
	}
	return records
}

// GetExpenseByID looks an expense up by ID, searching individual
// expenses first and group expenses second.
func (s *ExpenseService) GetExpenseByID(ctx context.Context, id uint) (*ExpenseDetail, error) {
	var expense models.Expense
	err := s.db.WithContext(ctx).
		Preload("Splits").
		Preload("Splits.User").
		First(&expense, id).Error
	if err == nil {
		return individualDetail(&expense), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch expense: %w", err)
	}
	return s.getGroupExpenseDetail(ctx, id)
}

func (s *ExpenseService) getGroupExpenseDetail(ctx context.Context, id uint) (*ExpenseDetail, error) {
	var expense models.GroupExpense
	err := s.db.WithContext(ctx).
		Preload("Splits").
		Preload("Splits.User").
		First(&expense, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrExpenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group expense: %w", err)
	}
	return groupDetail(&expense), nil
}

func individualDetail(expense *models.Expense) *ExpenseDetail {
	detail := &ExpenseDetail{
		ID:          expense.ID,
		Kind:        "individual",
		PayerID:     expense.PayerID,
		Amount:      expense.Amount,
		Currency:    expense.Currency,
		Description: expense.Description,
		CreatedAt:   expense.CreatedAt,
	}
	for _, split := range expense.Splits {
		detail.SplitType = split.SplitType
		detail.Participants = append(detail.Participants, ParticipantDetail{
			UserID:     split.UserID,
			Name:       split.User.Name,
			PaidAmount: split.PaidAmount,
			AmountOwed: split.AmountOwed,
		})
	}
	return detail
}

func groupDetail(expense *models.GroupExpense) *ExpenseDetail {
	detail := &ExpenseDetail{
		ID:          expense.ID,
		Kind:        "group",
		GroupID:     expense.GroupID,
		PayerID:     expense.PayerID,
		Amount:      expense.Amount,
		Currency:    expense.Currency,
		Description: expense.Description,
		CreatedAt:   expense.CreatedAt,
	}
	for _, split := range expense.Splits {
		detail.SplitType = split.SplitType
		detail.Participants = append(detail.Participants, ParticipantDetail{
			UserID:     split.UserID,
			Name:       split.User.Name,
			PaidAmount: split.PaidAmount,
			AmountOwed: split.AmountOwed,
		})
	}
	return detail
}

// UserExpenses is the combined expense history of one user.
type UserExpenses struct {
	IndividualExpenses []ExpenseDetail `json:"individual_expenses"`
	GroupExpenses      []ExpenseDetail `json:"group_expenses"`
}

// GetExpensesForUser returns every individual and group expense the user
// participates in.
func (s *ExpenseService) GetExpensesForUser(ctx context.Context, userID uint) (*UserExpenses, error) {
	var individualSplits []models.ExpenseSplit
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Expense").
		Preload("Expense.Splits").
		Preload("Expense.Splits.User").
		Find(&individualSplits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}

	var groupSplits []models.GroupExpenseSplit
	err = s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("GroupExpense").
		Preload("GroupExpense.Splits").
		Preload("GroupExpense.Splits.User").
		Find(&groupSplits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group expenses: %w", err)
	}

	combined := &UserExpenses{}
	for i := range individualSplits {
		combined.IndividualExpenses = append(combined.IndividualExpenses, *individualDetail(&individualSplits[i].Expense))
	}
	for i := range groupSplits {
		combined.GroupExpenses = append(combined.GroupExpenses, *groupDetail(&groupSplits[i].GroupExpense))
	}
	return combined, nil
}

// UpdateExpenseSplits replaces an expense's splits with freshly computed
// allocations. Works for both individual and group expenses.
func (s *ExpenseService) UpdateExpenseSplits(ctx context.Context, expenseID uint, splitType ledger.SplitType, participants []ParticipantInput) (*ExpenseDetail, error) {
	if _, err := findUsers(ctx, s.db, participantIDs(participants)); err != nil {
		return nil, err
	}

	var expense models.Expense
	err := s.db.WithContext(ctx).First(&expense, expenseID).Error
	if err == nil {
		allocations, err := ledger.ComputeSplits(expense.Amount, splitType, contributions(participants))
		if err != nil {
			return nil, err
		}
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("expense_id = ?", expense.ID).Delete(&models.ExpenseSplit{}).Error; err != nil {
				return fmt.Errorf("failed to clear expense splits: %w", err)
			}
			splits := buildSplits(splitType, participants, allocations)
			for i := range splits {
				split := models.ExpenseSplit{
					ExpenseID:  expense.ID,
					UserID:     splits[i].UserID,
					SplitType:  splits[i].SplitType,
					PaidAmount: splits[i].PaidAmount,
					AmountOwed: splits[i].AmountOwed,
					Percentage: splits[i].Percentage,
					Shares:     splits[i].Shares,
				}
				if err := tx.Create(&split).Error; err != nil {
					return fmt.Errorf("failed to create expense split: %w", err)
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return s.GetExpenseByID(ctx, expense.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch expense: %w", err)
	}

	var groupExpense models.GroupExpense
	err = s.db.WithContext(ctx).First(&groupExpense, expenseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrExpenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group expense: %w", err)
	}
	return s.replaceGroupSplits(ctx, &groupExpense, splitType, participants)
}

func (s *ExpenseService) replaceGroupSplits(ctx context.Context, groupExpense *models.GroupExpense, splitType ledger.SplitType, participants []ParticipantInput) (*ExpenseDetail, error) {
	allocations, err := ledger.ComputeSplits(groupExpense.Amount, splitType, contributions(participants))
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_expense_id = ?", groupExpense.ID).Delete(&models.GroupExpenseSplit{}).Error; err != nil {
			return fmt.Errorf("failed to clear group expense splits: %w", err)
		}
		splits := buildSplits(splitType, participants, allocations)
		for i := range splits {
			split := models.GroupExpenseSplit{
				GroupExpenseID: groupExpense.ID,
				UserID:         splits[i].UserID,
				SplitType:      splits[i].SplitType,
				PaidAmount:     splits[i].PaidAmount,
				AmountOwed:     splits[i].AmountOwed,
				Percentage:     splits[i].Percentage,
				Shares:         splits[i].Shares,
			}
			if err := tx.Create(&split).Error; err != nil {
				return fmt.Errorf("failed to create group expense split: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.getGroupExpenseDetail(ctx, groupExpense.ID)
}

// GroupExpenseAction adds, updates or removes an expense inside a group.
func (s *ExpenseService) GroupExpenseAction(ctx context.Context, groupID uint, input GroupExpenseActionInput) (*ExpenseDetail, error) {
	var group models.Group
	err := s.db.WithContext(ctx).First(&group, groupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group: %w", err)
	}

	switch input.Action {
	case ExpenseActionAdd:
		return s.CreateExpense(ctx, CreateExpenseInput{
			Amount:       input.Amount,
			Currency:     input.Currency,
			Description:  input.Description,
			GroupID:      groupID,
			PayerID:      input.PayerID,
			SplitType:    input.SplitType,
			Participants: input.Participants,
		})

	case ExpenseActionUpdate:
		var expense models.GroupExpense
		err := s.db.WithContext(ctx).Where("group_id = ?", groupID).First(&expense, input.ExpenseID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to fetch group expense: %w", err)
		}

		updates := map[string]interface{}{}
		if input.Amount.IsPositive() {
			updates["amount"] = input.Amount
		}
		if input.Description != "" {
			updates["description"] = input.Description
		}
		if input.PayerID != 0 {
			updates["payer_id"] = input.PayerID
		}
		if len(updates) > 0 {
			if err := s.db.WithContext(ctx).Model(&expense).Updates(updates).Error; err != nil {
				return nil, fmt.Errorf("failed to update group expense: %w", err)
			}
			if err := s.db.WithContext(ctx).First(&expense, expense.ID).Error; err != nil {
				return nil, fmt.Errorf("failed to fetch group expense: %w", err)
			}
		}
		if _, err := findUsers(ctx, s.db, participantIDs(input.Participants)); err != nil {
			return nil, err
		}
		return s.replaceGroupSplits(ctx, &expense, input.SplitType, input.Participants)

	case ExpenseActionRemove:
		var expense models.GroupExpense
		err := s.db.WithContext(ctx).Where("group_id = ?", groupID).First(&expense, input.ExpenseID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to fetch group expense: %w", err)
		}
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("group_expense_id = ?", expense.ID).Delete(&models.GroupExpenseSplit{}).Error; err != nil {
				return fmt.Errorf("failed to delete group expense splits: %w", err)
			}
			if err := tx.Delete(&expense).Error; err != nil {
				return fmt.Errorf("failed to delete group expense: %w", err)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return nil, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidExpenseAction, input.Action)
	}
}
