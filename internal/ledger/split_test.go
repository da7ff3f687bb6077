package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeSplits(t *testing.T) {
	tests := []struct {
		name          string
		total         decimal.Decimal
		splitType     SplitType
		contributions []Contribution
		wantErr       error
		wantOwed      map[uint]decimal.Decimal
		wantSumTotal  bool
	}{
		{
			name:      "equal split three ways",
			total:     dec("100"),
			splitType: SplitEqual,
			contributions: []Contribution{
				{UserID: 1}, {UserID: 2}, {UserID: 3},
			},
			wantSumTotal: true,
		},
		{
			name:      "equal split single participant",
			total:     dec("42.50"),
			splitType: SplitEqual,
			contributions: []Contribution{
				{UserID: 7},
			},
			wantOwed:     map[uint]decimal.Decimal{7: dec("42.50")},
			wantSumTotal: true,
		},
		{
			name:      "unequal passthrough without normalization",
			total:     dec("100"),
			splitType: SplitUnequal,
			contributions: []Contribution{
				{UserID: 1, Paid: dec("60")},
				{UserID: 2, Paid: dec("40")},
			},
			wantOwed: map[uint]decimal.Decimal{1: dec("60"), 2: dec("40")},
		},
		{
			name:      "unequal missing paid amount owes zero",
			total:     dec("100"),
			splitType: SplitUnequal,
			contributions: []Contribution{
				{UserID: 1, Paid: dec("100")},
				{UserID: 2},
			},
			wantOwed: map[uint]decimal.Decimal{1: dec("100"), 2: decimal.Zero},
		},
		{
			name:      "percentage split",
			total:     dec("200"),
			splitType: SplitPercentage,
			contributions: []Contribution{
				{UserID: 1, Percentage: dec("25")},
				{UserID: 2, Percentage: dec("75")},
			},
			wantOwed:     map[uint]decimal.Decimal{1: dec("50"), 2: dec("150")},
			wantSumTotal: true,
		},
		{
			name:      "percentage missing field owes zero",
			total:     dec("200"),
			splitType: SplitPercentage,
			contributions: []Contribution{
				{UserID: 1, Percentage: dec("100")},
				{UserID: 2},
			},
			wantOwed: map[uint]decimal.Decimal{1: dec("200"), 2: decimal.Zero},
		},
		{
			name:      "share split proportional",
			total:     dec("90"),
			splitType: SplitShare,
			contributions: []Contribution{
				{UserID: 1, Shares: dec("1")},
				{UserID: 2, Shares: dec("2")},
			},
			wantOwed:     map[uint]decimal.Decimal{1: dec("30"), 2: dec("60")},
			wantSumTotal: true,
		},
		{
			name:      "share split with a zero-share participant",
			total:     dec("90"),
			splitType: SplitShare,
			contributions: []Contribution{
				{UserID: 1, Shares: dec("3")},
				{UserID: 2},
			},
			wantOwed:     map[uint]decimal.Decimal{1: dec("90"), 2: decimal.Zero},
			wantSumTotal: true,
		},
		{
			name:      "share split all shares zero fails",
			total:     dec("90"),
			splitType: SplitShare,
			contributions: []Contribution{
				{UserID: 1}, {UserID: 2},
			},
			wantErr: ErrZeroShareTotal,
		},
		{
			name:          "no participants fails",
			total:         dec("100"),
			splitType:     SplitEqual,
			contributions: nil,
			wantErr:       ErrNoParticipants,
		},
		{
			name:      "zero total fails",
			total:     decimal.Zero,
			splitType: SplitEqual,
			contributions: []Contribution{
				{UserID: 1},
			},
			wantErr: ErrNonPositiveAmount,
		},
		{
			name:      "negative total fails",
			total:     dec("-5"),
			splitType: SplitEqual,
			contributions: []Contribution{
				{UserID: 1},
			},
			wantErr: ErrNonPositiveAmount,
		},
		{
			name:      "unknown split type fails closed",
			total:     dec("100"),
			splitType: SplitType(99),
			contributions: []Contribution{
				{UserID: 1}, {UserID: 2},
			},
			wantErr: ErrInvalidSplitType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allocations, err := ComputeSplits(tt.total, tt.splitType, tt.contributions)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ComputeSplits() error = %v; want %v", err, tt.wantErr)
				}
				if allocations != nil {
					t.Errorf("ComputeSplits() returned partial result alongside error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeSplits() unexpected error: %v", err)
			}

			if len(allocations) != len(tt.contributions) {
				t.Fatalf("got %d allocations; want %d", len(allocations), len(tt.contributions))
			}

			// Output order must match input order.
			for i, a := range allocations {
				if a.UserID != tt.contributions[i].UserID {
					t.Errorf("allocation[%d].UserID = %d; want %d", i, a.UserID, tt.contributions[i].UserID)
				}
				if a.Owed.IsNegative() {
					t.Errorf("allocation[%d] owed %s is negative", i, a.Owed)
				}
			}

			for userID, want := range tt.wantOwed {
				var got decimal.Decimal
				found := false
				for _, a := range allocations {
					if a.UserID == userID {
						got = a.Owed
						found = true
					}
				}
				if !found {
					t.Errorf("no allocation for user %d", userID)
					continue
				}
				if !got.Equal(want) {
					t.Errorf("user %d owes %s; want %s", userID, got, want)
				}
			}

			if tt.wantSumTotal {
				sum := decimal.Zero
				for _, a := range allocations {
					sum = sum.Add(a.Owed)
				}
				if sum.Sub(tt.total).Abs().GreaterThan(dec("0.000001")) {
					t.Errorf("allocations sum to %s; want %s within 1e-6", sum, tt.total)
				}
			}
		})
	}
}

func TestComputeSplitsEqualSumPreservation(t *testing.T) {
	// 100 / 3 does not terminate; the three allocations must still sum
	// back to 100 within tolerance.
	allocations, err := ComputeSplits(dec("100"), SplitEqual, []Contribution{
		{UserID: 1}, {UserID: 2}, {UserID: 3},
	})
	if err != nil {
		t.Fatalf("ComputeSplits() unexpected error: %v", err)
	}

	sum := decimal.Zero
	for _, a := range allocations {
		if !a.Owed.Equal(allocations[0].Owed) {
			t.Errorf("equal split allocations differ: %s vs %s", a.Owed, allocations[0].Owed)
		}
		sum = sum.Add(a.Owed)
	}
	if sum.Sub(dec("100")).Abs().GreaterThan(dec("0.000001")) {
		t.Errorf("allocations sum to %s; want 100 within 1e-6", sum)
	}
}
