package ledger

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SplitType selects the rule used to divide an expense total among
// participants. Exactly four values exist; anything else is rejected
// at parse time and again at computation time.
type SplitType uint8

const (
	// SplitEqual divides the total evenly across all participants.
	SplitEqual SplitType = iota + 1
	// SplitUnequal uses each participant's paid amount as their owed amount.
	SplitUnequal
	// SplitPercentage divides the total by each participant's percentage (0-100).
	SplitPercentage
	// SplitShare divides the total proportionally to each participant's share units.
	SplitShare
)

var splitTypeNames = map[SplitType]string{
	SplitEqual:      "EQUAL",
	SplitUnequal:    "UNEQUAL",
	SplitPercentage: "PERCENTAGE",
	SplitShare:      "SHARE",
}

// ParseSplitType converts the wire/database representation to a SplitType.
func ParseSplitType(s string) (SplitType, error) {
	for t, name := range splitTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSplitType, s)
}

func (t SplitType) String() string {
	if name, ok := splitTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SplitType(%d)", uint8(t))
}

// Valid reports whether t is one of the four recognized split types.
func (t SplitType) Valid() bool {
	_, ok := splitTypeNames[t]
	return ok
}

// MarshalJSON encodes the split type as its string name.
func (t SplitType) MarshalJSON() ([]byte, error) {
	name, ok := splitTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSplitType, uint8(t))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a split type from its string name.
func (t *SplitType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseSplitType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer so GORM stores the string name.
func (t SplitType) Value() (driver.Value, error) {
	name, ok := splitTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSplitType, uint8(t))
	}
	return name, nil
}

// Scan implements sql.Scanner for reading the string name back.
func (t *SplitType) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseSplitType(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		return t.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into SplitType", src)
	}
}
