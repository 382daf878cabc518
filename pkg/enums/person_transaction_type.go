package enums

import "fmt"

// PersonTransactionType classifies a per-party ledger movement.
type PersonTransactionType string

const (
	PersonTransactionPurchase  PersonTransactionType = "PURCHASE"
	PersonTransactionBrokerFee PersonTransactionType = "BROKER_FEE"
	PersonTransactionPayment   PersonTransactionType = "PAYMENT"
)

var validPersonTransactionTypes = []PersonTransactionType{
	PersonTransactionPurchase,
	PersonTransactionBrokerFee,
	PersonTransactionPayment,
}

// IsValid reports whether the value matches the canonical transaction type enum.
func (t PersonTransactionType) IsValid() bool {
	for _, candidate := range validPersonTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParsePersonTransactionType converts raw input into PersonTransactionType.
func ParsePersonTransactionType(value string) (PersonTransactionType, error) {
	for _, candidate := range validPersonTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid person transaction type %q", value)
}
