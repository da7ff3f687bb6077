// Package ledger holds the two pure computations of the application:
// dividing an expense total among participants and collapsing a set of
// net balances into a short list of settling payments. Amounts are
// decimal.Decimal throughout; nothing in this package touches the
// database or the network, so every function is safe to call
// concurrently.
package ledger

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// Contribution is one participant's input to a split computation. Only
// the field matching the active split type is consulted; the zero value
// of the others is ignored. A zero value in the relevant field means the
// participant owes nothing (PERCENTAGE and SHARE treat missing data as
// zero rather than erroring).
type Contribution struct {
	UserID     uint
	Paid       decimal.Decimal
	Percentage decimal.Decimal
	Shares     decimal.Decimal
}

// Allocation is the computed owed amount for one participant.
type Allocation struct {
	UserID uint
	Owed   decimal.Decimal
}

// ComputeSplits divides total among the contributions according to the
// split type and returns one allocation per contribution, in input
// order. For EQUAL, PERCENTAGE and SHARE splits the allocations sum back
// to total (exactly, up to decimal division precision). UNEQUAL is a
// passthrough of each participant's paid amount and is not cross-checked
// against total.
func ComputeSplits(total decimal.Decimal, splitType SplitType, contributions []Contribution) ([]Allocation, error) {
	if !total.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if len(contributions) == 0 {
		return nil, ErrNoParticipants
	}

	allocations := make([]Allocation, 0, len(contributions))

	switch splitType {
	case SplitEqual:
		perHead := total.Div(decimal.NewFromInt(int64(len(contributions))))
		for _, c := range contributions {
			allocations = append(allocations, Allocation{UserID: c.UserID, Owed: perHead})
		}

	case SplitUnequal:
		for _, c := range contributions {
			allocations = append(allocations, Allocation{UserID: c.UserID, Owed: c.Paid})
		}

	case SplitPercentage:
		for _, c := range contributions {
			owed := c.Percentage.Div(oneHundred).Mul(total)
			allocations = append(allocations, Allocation{UserID: c.UserID, Owed: owed})
		}

	case SplitShare:
		totalShares := decimal.Zero
		for _, c := range contributions {
			totalShares = totalShares.Add(c.Shares)
		}
		if totalShares.IsZero() {
			return nil, ErrZeroShareTotal
		}
		for _, c := range contributions {
			owed := c.Shares.Div(totalShares).Mul(total)
			allocations = append(allocations, Allocation{UserID: c.UserID, Owed: owed})
		}

	default:
		return nil, ErrInvalidSplitType
	}

	return allocations, nil
}
