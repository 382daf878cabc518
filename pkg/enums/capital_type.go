package enums

import "fmt"

// CapitalType identifies one of the dealership's three running balances.
type CapitalType string

const (
	CapitalTypeCash   CapitalType = "cash"
	CapitalTypeBank   CapitalType = "bank"
	CapitalTypeCredit CapitalType = "credit"
)

var validCapitalTypes = []CapitalType{
	CapitalTypeCash,
	CapitalTypeBank,
	CapitalTypeCredit,
}

// AllCapitalTypes returns the closed set of capital accounts in display order.
func AllCapitalTypes() []CapitalType {
	out := make([]CapitalType, len(validCapitalTypes))
	copy(out, validCapitalTypes)
	return out
}

// IsValid reports whether the value matches the canonical capital enum.
func (t CapitalType) IsValid() bool {
	for _, candidate := range validCapitalTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseCapitalType converts raw input into CapitalType.
func ParseCapitalType(value string) (CapitalType, error) {
	for _, candidate := range validCapitalTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid capital type %q", value)
}
