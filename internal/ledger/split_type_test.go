package ledger

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseSplitType(t *testing.T) {
	tests := []struct {
		input   string
		want    SplitType
		wantErr bool
	}{
		{input: "EQUAL", want: SplitEqual},
		{input: "UNEQUAL", want: SplitUnequal},
		{input: "PERCENTAGE", want: SplitPercentage},
		{input: "SHARE", want: SplitShare},
		{input: "equal", wantErr: true},
		{input: "BOGUS", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSplitType(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSplitType) {
					t.Fatalf("ParseSplitType(%q) error = %v; want ErrInvalidSplitType", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSplitType(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSplitType(%q) = %v; want %v", tt.input, got, tt.want)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q; want %q", got.String(), tt.input)
			}
		})
	}
}

func TestSplitTypeJSON(t *testing.T) {
	data, err := json.Marshal(SplitPercentage)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"PERCENTAGE"` {
		t.Errorf("Marshal = %s; want %q", data, `"PERCENTAGE"`)
	}

	var parsed SplitType
	if err := json.Unmarshal([]byte(`"SHARE"`), &parsed); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if parsed != SplitShare {
		t.Errorf("Unmarshal = %v; want SplitShare", parsed)
	}

	if err := json.Unmarshal([]byte(`"RANDOM"`), &parsed); !errors.Is(err, ErrInvalidSplitType) {
		t.Errorf("Unmarshal of unknown value: error = %v; want ErrInvalidSplitType", err)
	}

	if _, err := json.Marshal(SplitType(42)); err == nil {
		t.Error("Marshal of invalid split type succeeded; want error")
	}
}

func TestSplitTypeScanValue(t *testing.T) {
	v, err := SplitShare.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if v != "SHARE" {
		t.Errorf("Value = %v; want SHARE", v)
	}

	var scanned SplitType
	if err := scanned.Scan("UNEQUAL"); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if scanned != SplitUnequal {
		t.Errorf("Scan = %v; want SplitUnequal", scanned)
	}

	if err := scanned.Scan([]byte("EQUAL")); err != nil {
		t.Fatalf("Scan bytes failed: %v", err)
	}
	if scanned != SplitEqual {
		t.Errorf("Scan bytes = %v; want SplitEqual", scanned)
	}

	if err := scanned.Scan(42); err == nil {
		t.Error("Scan of int succeeded; want error")
	}
}
