package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"splitledger_app_echo/internal/ledger"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestNetBalances(t *testing.T) {
	tests := []struct {
		name        string
		entries     []BalanceEntry
		settlements []ledger.Transaction
		want        map[uint]string
	}{
		{
			name: "payer credited full amount",
			entries: []BalanceEntry{
				{UserID: 1, Paid: decimal.NewFromInt(90)},
				{UserID: 1, Owed: decimal.NewFromInt(30)},
				{UserID: 2, Owed: decimal.NewFromInt(30)},
				{UserID: 3, Owed: decimal.NewFromInt(30)},
			},
			want: map[uint]string{1: "60", 2: "-30", 3: "-30"},
		},
		{
			name: "settlement raises payer and lowers recipient",
			entries: []BalanceEntry{
				{UserID: 1, Paid: decimal.NewFromInt(100)},
				{UserID: 1, Owed: decimal.NewFromInt(50)},
				{UserID: 2, Owed: decimal.NewFromInt(50)},
			},
			settlements: []ledger.Transaction{
				{FromUserID: 2, ToUserID: 1, Amount: decimal.NewFromInt(50)},
			},
			want: map[uint]string{1: "0", 2: "0"},
		},
		{
			name: "multiple expenses accumulate",
			entries: []BalanceEntry{
				{UserID: 1, Paid: decimal.NewFromInt(60)},
				{UserID: 1, Owed: decimal.NewFromInt(20)},
				{UserID: 2, Owed: decimal.NewFromInt(20)},
				{UserID: 3, Owed: decimal.NewFromInt(20)},
				{UserID: 2, Paid: decimal.NewFromInt(30)},
				{UserID: 1, Owed: decimal.NewFromInt(15)},
				{UserID: 2, Owed: decimal.NewFromInt(15)},
			},
			want: map[uint]string{1: "25", 2: "-5", 3: "-20"},
		},
		{
			name:    "empty ledger",
			entries: nil,
			want:    map[uint]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NetBalances(tt.entries, tt.settlements)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d users, want %d", len(got), len(tt.want))
			}
			for userID, wantStr := range tt.want {
				want := dec(t, wantStr)
				if !got[userID].Equal(want) {
					t.Errorf("user %d: got %s, want %s", userID, got[userID], want)
				}
			}
		})
	}
}

func TestNetBalancesSumsToZeroWhenPaidEqualsOwed(t *testing.T) {
	entries := []BalanceEntry{
		{UserID: 1, Paid: dec(t, "123.45")},
		{UserID: 1, Owed: dec(t, "41.15")},
		{UserID: 2, Owed: dec(t, "41.15")},
		{UserID: 3, Owed: dec(t, "41.15")},
	}
	net := NetBalances(entries, nil)

	sum := decimal.Zero
	for _, v := range net {
		sum = sum.Add(v)
	}
	if !sum.IsZero() {
		t.Fatalf("net balances sum to %s, want 0", sum)
	}

	if _, err := ledger.SimplifyDebts(net); err != nil {
		t.Fatalf("balances should be simplifiable: %v", err)
	}
}
