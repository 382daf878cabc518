package enums

import "fmt"

// CapitalEntryKind classifies a capital ledger movement.
type CapitalEntryKind string

const (
	CapitalEntryPurchaseDebit  CapitalEntryKind = "purchase_debit"
	CapitalEntrySaleCredit     CapitalEntryKind = "sale_credit"
	CapitalEntryManualAdd      CapitalEntryKind = "manual_add"
	CapitalEntryManualSubtract CapitalEntryKind = "manual_subtract"
	CapitalEntryManualEdit     CapitalEntryKind = "manual_edit"
	CapitalEntryInitialBalance CapitalEntryKind = "initial_balance"
)

var validCapitalEntryKinds = []CapitalEntryKind{
	CapitalEntryPurchaseDebit,
	CapitalEntrySaleCredit,
	CapitalEntryManualAdd,
	CapitalEntryManualSubtract,
	CapitalEntryManualEdit,
	CapitalEntryInitialBalance,
}

// IsValid reports whether the value matches the canonical entry kind enum.
func (k CapitalEntryKind) IsValid() bool {
	for _, candidate := range validCapitalEntryKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseCapitalEntryKind converts raw input into CapitalEntryKind.
func ParseCapitalEntryKind(value string) (CapitalEntryKind, error) {
	for _, candidate := range validCapitalEntryKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid capital entry kind %q", value)
}
