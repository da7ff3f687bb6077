package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"splitledger_app_echo/internal/ledger"
	"splitledger_app_echo/internal/models"
)

// BalanceEntry is one user's contribution to a balance sheet: what they
// paid out of pocket and what the allocator says they owe.
type BalanceEntry struct {
	UserID uint
	Paid   decimal.Decimal
	Owed   decimal.Decimal
}

// NetBalances folds ledger entries and recorded settlements into a net
// position per user. Positive means the user is owed money, negative
// means they owe. A settlement moves money from payer to recipient, so
// it raises the payer's net and lowers the recipient's.
func NetBalances(entries []BalanceEntry, settlements []ledger.Transaction) map[uint]decimal.Decimal {
	net := make(map[uint]decimal.Decimal)
	for _, e := range entries {
		net[e.UserID] = net[e.UserID].Add(e.Paid).Sub(e.Owed)
	}
	for _, s := range settlements {
		net[s.FromUserID] = net[s.FromUserID].Add(s.Amount)
		net[s.ToUserID] = net[s.ToUserID].Sub(s.Amount)
	}
	return net
}

// UserBalanceSummary is one user's overall position across every
// expense they touch.
type UserBalanceSummary struct {
	UserID    uint            `json:"user_id"`
	TotalPaid decimal.Decimal `json:"total_paid"`
	TotalOwed decimal.Decimal `json:"total_owed"`
	Net       decimal.Decimal `json:"net"`
}

// BalanceService computes group and per-user balances from persisted
// expenses, splits and settlements.
type BalanceService struct {
	db *gorm.DB
}

func NewBalanceService(db *gorm.DB) *BalanceService {
	return &BalanceService{db: db}
}

// GroupBalances returns the net position of every member of a group,
// settlements included.
func (s *BalanceService) GroupBalances(ctx context.Context, groupID uint) (map[uint]decimal.Decimal, error) {
	var group models.Group
	err := s.db.WithContext(ctx).Preload("Members").First(&group, groupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group: %w", err)
	}

	var expenses []models.GroupExpense
	err = s.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Preload("Splits").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group expenses: %w", err)
	}

	var settlements []models.Settlement
	err = s.db.WithContext(ctx).Where("group_id = ?", groupID).Find(&settlements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settlements: %w", err)
	}

	var entries []BalanceEntry
	for _, expense := range expenses {
		entries = append(entries, BalanceEntry{UserID: expense.PayerID, Paid: expense.Amount})
		for _, split := range expense.Splits {
			entries = append(entries, BalanceEntry{UserID: split.UserID, Owed: split.AmountOwed})
		}
	}
	transfers := make([]ledger.Transaction, 0, len(settlements))
	for _, settlement := range settlements {
		transfers = append(transfers, ledger.Transaction{
			FromUserID: settlement.FromUserID,
			ToUserID:   settlement.ToUserID,
			Amount:     settlement.Amount,
		})
	}

	net := NetBalances(entries, transfers)
	// Members with no expenses still appear, at zero.
	for _, member := range group.Members {
		if _, ok := net[member.ID]; !ok {
			net[member.ID] = decimal.Zero
		}
	}
	return net, nil
}

// GroupSettlementPlan returns the minimal set of transfers that settles
// a group's balances.
func (s *BalanceService) GroupSettlementPlan(ctx context.Context, groupID uint) ([]ledger.Transaction, error) {
	net, err := s.GroupBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return ledger.SimplifyDebts(net)
}

// UserBalance aggregates one user's position across individual and
// group expenses and their settlements.
func (s *BalanceService) UserBalance(ctx context.Context, userID uint) (*UserBalanceSummary, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	summary := &UserBalanceSummary{UserID: userID}

	var paidIndividual []models.Expense
	if err := s.db.WithContext(ctx).Where("payer_id = ?", userID).Find(&paidIndividual).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}
	for _, e := range paidIndividual {
		summary.TotalPaid = summary.TotalPaid.Add(e.Amount)
	}

	var paidGroup []models.GroupExpense
	if err := s.db.WithContext(ctx).Where("payer_id = ?", userID).Find(&paidGroup).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch group expenses: %w", err)
	}
	for _, e := range paidGroup {
		summary.TotalPaid = summary.TotalPaid.Add(e.Amount)
	}

	var individualSplits []models.ExpenseSplit
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&individualSplits).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch expense splits: %w", err)
	}
	for _, split := range individualSplits {
		summary.TotalOwed = summary.TotalOwed.Add(split.AmountOwed)
	}

	var groupSplits []models.GroupExpenseSplit
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&groupSplits).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch group expense splits: %w", err)
	}
	for _, split := range groupSplits {
		summary.TotalOwed = summary.TotalOwed.Add(split.AmountOwed)
	}

	summary.Net = summary.TotalPaid.Sub(summary.TotalOwed)

	var settlements []models.Settlement
	err = s.db.WithContext(ctx).
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Find(&settlements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settlements: %w", err)
	}
	for _, settlement := range settlements {
		if settlement.FromUserID == userID {
			summary.Net = summary.Net.Add(settlement.Amount)
		} else {
			summary.Net = summary.Net.Sub(settlement.Amount)
		}
	}

	return summary, nil
}
