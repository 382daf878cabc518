package enums

// TransactionStatus marks the lifecycle state of a person transaction.
// Purchases commit atomically, so every transaction written by the purchase
// path is COMPLETED; PENDING exists for EMI installments scheduled ahead.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusPending   TransactionStatus = "PENDING"
)

// IsValid reports whether the value matches the canonical status enum.
func (s TransactionStatus) IsValid() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusPending
}
