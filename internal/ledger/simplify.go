package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Tolerance below which a residual balance is considered settled. Covers
// rounding dust introduced upstream (decimal division, currency
// conversion).
var tolerance = decimal.New(1, -6) // 1e-6

// Transaction is one proposed payment in a settlement plan.
type Transaction struct {
	FromUserID uint            `json:"from_user_id"`
	ToUserID   uint            `json:"to_user_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// SimplifyDebts collapses a mapping of user to signed net balance
// (positive = owed money, negative = owes money) into an ordered list of
// payments that settles every balance. Users are processed in ascending
// ID order so the output is deterministic regardless of map iteration
// order.
//
// The matching is greedy: each step pays the current debtor's remaining
// debt into the current creditor's remaining credit, whichever is
// smaller, and advances whoever hits zero. The plan uses at most
// creditors+debtors-1 transactions; it is not guaranteed to be the
// theoretical minimum.
//
// Balances must sum to zero within tolerance, otherwise
// ErrUnbalancedLedger is returned before any matching happens.
func SimplifyDebts(balances map[uint]decimal.Decimal) ([]Transaction, error) {
	userIDs := make([]uint, 0, len(balances))
	sum := decimal.Zero
	for id, balance := range balances {
		userIDs = append(userIDs, id)
		sum = sum.Add(balance)
	}
	if sum.Abs().GreaterThan(tolerance) {
		return nil, ErrUnbalancedLedger
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	type party struct {
		userID uint
		amount decimal.Decimal
	}
	var creditors, debtors []party
	for _, id := range userIDs {
		balance := balances[id]
		switch {
		case balance.GreaterThan(tolerance):
			creditors = append(creditors, party{userID: id, amount: balance})
		case balance.LessThan(tolerance.Neg()):
			debtors = append(debtors, party{userID: id, amount: balance.Neg()})
		}
	}

	var transactions []Transaction
	ci, di := 0, 0
	for ci < len(creditors) && di < len(debtors) {
		creditor := &creditors[ci]
		debtor := &debtors[di]

		transfer := decimal.Min(creditor.amount, debtor.amount)
		transactions = append(transactions, Transaction{
			FromUserID: debtor.userID,
			ToUserID:   creditor.userID,
			Amount:     transfer,
		})

		creditor.amount = creditor.amount.Sub(transfer)
		debtor.amount = debtor.amount.Sub(transfer)

		if creditor.amount.LessThanOrEqual(tolerance) {
			ci++
		}
		if debtor.amount.LessThanOrEqual(tolerance) {
			di++
		}
	}

	return transactions, nil
}
