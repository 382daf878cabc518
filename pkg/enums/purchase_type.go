package enums

import "fmt"

// PurchaseType discriminates how a vehicle was acquired.
type PurchaseType string

const (
	PurchaseTypeDirect    PurchaseType = "direct"
	PurchaseTypeMiddleMan PurchaseType = "middle_man"
	PurchaseTypeBroker    PurchaseType = "broker"
)

var validPurchaseTypes = []PurchaseType{
	PurchaseTypeDirect,
	PurchaseTypeMiddleMan,
	PurchaseTypeBroker,
}

// IsValid reports whether the value matches the canonical purchase type enum.
func (t PurchaseType) IsValid() bool {
	for _, candidate := range validPurchaseTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParsePurchaseType converts raw input into PurchaseType.
func ParsePurchaseType(value string) (PurchaseType, error) {
	for _, candidate := range validPurchaseTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid purchase type %q", value)
}
