package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nairmotors/dealerbook-backend/pkg/enums"
)

// CapitalEntry is one immutable movement on a capital account. Amount is
// always stored positive; Kind carries the direction and classification.
// Manual edits additionally record the balance before and after.
type CapitalEntry struct {
	ID              uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CapitalType     enums.CapitalType      `gorm:"column:capital_type;not null;index"`
	Kind            enums.CapitalEntryKind `gorm:"column:kind;not null"`
	Amount          decimal.Decimal        `gorm:"column:amount;type:numeric(20,2);not null"`
	OrderNo         *int64                 `gorm:"column:order_no"`
	PurchaseID      *uuid.UUID             `gorm:"column:purchase_id;type:uuid;index"`
	PreviousBalance *decimal.Decimal       `gorm:"column:previous_balance;type:numeric(20,2)"`
	NewBalance      *decimal.Decimal       `gorm:"column:new_balance;type:numeric(20,2)"`
	Description     string                 `gorm:"column:description"`
	Reason          string                 `gorm:"column:reason"`
	OccurredAt      time.Time              `gorm:"column:occurred_at;not null"`
	CreatedAt       time.Time              `gorm:"column:created_at;autoCreateTime"`
}
