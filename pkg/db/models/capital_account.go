package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nairmotors/dealerbook-backend/pkg/enums"
)

// CapitalAccount is one of the three singleton dealership balances.
// Negative balances are allowed; they model credit owed, not a cap.
type CapitalAccount struct {
	Type      enums.CapitalType `gorm:"column:type;primaryKey"`
	Balance   decimal.Decimal   `gorm:"column:balance;type:numeric(20,2);not null;default:0"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
