package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSimplifyDebts(t *testing.T) {
	tests := []struct {
		name     string
		balances map[uint]decimal.Decimal
		wantErr  error
		want     []Transaction
	}{
		{
			name: "one creditor two debtors",
			balances: map[uint]decimal.Decimal{
				1: dec("100"),
				2: dec("-40"),
				3: dec("-60"),
			},
			want: []Transaction{
				{FromUserID: 2, ToUserID: 1, Amount: dec("40")},
				{FromUserID: 3, ToUserID: 1, Amount: dec("60")},
			},
		},
		{
			name: "exact pairwise match advances both cursors",
			balances: map[uint]decimal.Decimal{
				1: dec("50"),
				2: dec("-50"),
				3: dec("25"),
				4: dec("-25"),
			},
			want: []Transaction{
				{FromUserID: 2, ToUserID: 1, Amount: dec("50")},
				{FromUserID: 4, ToUserID: 3, Amount: dec("25")},
			},
		},
		{
			name: "creditor spans multiple debtors deterministically",
			balances: map[uint]decimal.Decimal{
				5: dec("-10"),
				9: dec("30"),
				7: dec("-20"),
			},
			want: []Transaction{
				{FromUserID: 5, ToUserID: 9, Amount: dec("10")},
				{FromUserID: 7, ToUserID: 9, Amount: dec("20")},
			},
		},
		{
			name: "zero balances are dropped",
			balances: map[uint]decimal.Decimal{
				1: dec("15"),
				2: decimal.Zero,
				3: dec("-15"),
			},
			want: []Transaction{
				{FromUserID: 3, ToUserID: 1, Amount: dec("15")},
			},
		},
		{
			name:     "empty input settles trivially",
			balances: map[uint]decimal.Decimal{},
			want:     nil,
		},
		{
			name: "unbalanced ledger fails fast",
			balances: map[uint]decimal.Decimal{
				1: dec("100"),
				2: dec("-40"),
			},
			wantErr: ErrUnbalancedLedger,
		},
		{
			name: "rounding dust within tolerance is accepted",
			balances: map[uint]decimal.Decimal{
				1: dec("33.3333333"),
				2: dec("-33.3333330"),
			},
			want: []Transaction{
				{FromUserID: 2, ToUserID: 1, Amount: dec("33.3333330")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SimplifyDebts(tt.balances)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SimplifyDebts() error = %v; want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SimplifyDebts() unexpected error: %v", err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("got %d transactions %v; want %d", len(got), got, len(tt.want))
			}
			for i, want := range tt.want {
				if got[i].FromUserID != want.FromUserID || got[i].ToUserID != want.ToUserID {
					t.Errorf("transaction[%d] = %d->%d; want %d->%d",
						i, got[i].FromUserID, got[i].ToUserID, want.FromUserID, want.ToUserID)
				}
				if !got[i].Amount.Equal(want.Amount) {
					t.Errorf("transaction[%d] amount = %s; want %s", i, got[i].Amount, want.Amount)
				}
			}
		})
	}
}

func TestSimplifyDebtsProperties(t *testing.T) {
	balances := map[uint]decimal.Decimal{
		1: dec("120.50"),
		2: dec("-30.25"),
		3: dec("79.75"),
		4: dec("-100"),
		5: dec("-70"),
		6: decimal.Zero,
	}

	transactions, err := SimplifyDebts(balances)
	if err != nil {
		t.Fatalf("SimplifyDebts() unexpected error: %v", err)
	}

	// Applying every transaction in order must drive all balances to zero.
	remaining := make(map[uint]decimal.Decimal, len(balances))
	for id, b := range balances {
		remaining[id] = b
	}
	for _, tx := range transactions {
		if !tx.Amount.IsPositive() {
			t.Errorf("transaction %d->%d has non-positive amount %s", tx.FromUserID, tx.ToUserID, tx.Amount)
		}
		remaining[tx.FromUserID] = remaining[tx.FromUserID].Add(tx.Amount)
		remaining[tx.ToUserID] = remaining[tx.ToUserID].Sub(tx.Amount)
	}
	for id, b := range remaining {
		if !b.IsZero() {
			t.Errorf("user %d left with balance %s after settlement", id, b)
		}
	}

	// Transaction count bound: creditors + debtors - 1.
	creditors, debtors := 0, 0
	for _, b := range balances {
		if b.IsPositive() {
			creditors++
		} else if b.IsNegative() {
			debtors++
		}
	}
	if max := creditors + debtors - 1; len(transactions) > max {
		t.Errorf("emitted %d transactions; bound is %d", len(transactions), max)
	}
}

func TestSimplifyDebtsDeterministic(t *testing.T) {
	balances := map[uint]decimal.Decimal{
		3: dec("-10"), 1: dec("40"), 4: dec("-30"), 2: decimal.Zero,
	}
	first, err := SimplifyDebts(balances)
	if err != nil {
		t.Fatalf("SimplifyDebts() unexpected error: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := SimplifyDebts(balances)
		if err != nil {
			t.Fatalf("SimplifyDebts() unexpected error: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d produced %d transactions; first run produced %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j].FromUserID != first[j].FromUserID || again[j].ToUserID != first[j].ToUserID {
				t.Fatalf("run %d transaction %d parties differ from first run", i, j)
			}
			if !again[j].Amount.Equal(first[j].Amount) {
				t.Fatalf("run %d transaction %d amount differs from first run", i, j)
			}
		}
	}
}
