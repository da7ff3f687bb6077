package ledger

import "errors"

var (
	// ErrInvalidSplitType is returned when a split type is not one of the
	// four recognized values. No partial allocation is produced.
	ErrInvalidSplitType = errors.New("invalid split type")

	// ErrNoParticipants is returned when an allocation is requested with
	// zero contributions.
	ErrNoParticipants = errors.New("expense has no participants")

	// ErrNonPositiveAmount is returned when the expense total is zero or
	// negative.
	ErrNonPositiveAmount = errors.New("expense amount must be positive")

	// ErrZeroShareTotal is returned for a SHARE split whose share units sum
	// to zero. Allocating in that state would silently owe everyone zero.
	ErrZeroShareTotal = errors.New("share units sum to zero")

	// ErrUnbalancedLedger is returned when the balances handed to the debt
	// simplifier do not sum to zero within tolerance. Proceeding would leave
	// some creditor or debtor silently unsettled.
	ErrUnbalancedLedger = errors.New("balances do not sum to zero")
)
