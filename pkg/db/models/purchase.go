package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nairmotors/dealerbook-backend/pkg/enums"
)

// Purchase identifies one vehicle acquisition event. Rows are written once by
// the purchase coordinator and never updated afterwards.
type Purchase struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNo       int64              `gorm:"column:order_no;not null;uniqueIndex"`
	TransactionNo *int64             `gorm:"column:transaction_no"`
	PurchaseType  enums.PurchaseType `gorm:"column:purchase_type;not null"`
	GrandTotal    decimal.Decimal    `gorm:"column:grand_total;type:numeric(20,2);not null"`
	GSTAmount     decimal.Decimal    `gorm:"column:gst_amount;type:numeric(20,2);not null"`

	CashAmount    decimal.Decimal     `gorm:"column:cash_amount;type:numeric(20,2);not null"`
	BankAmount    decimal.Decimal     `gorm:"column:bank_amount;type:numeric(20,2);not null"`
	CreditAmount  decimal.Decimal     `gorm:"column:credit_amount;type:numeric(20,2);not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;not null"`

	BrandID         uuid.UUID       `gorm:"column:brand_id;type:uuid;not null;index"`
	VehicleSnapshot json.RawMessage `gorm:"column:vehicle_snapshot;type:jsonb"`
	MiddleManName   string          `gorm:"column:middle_man_name"`
	OwnerID         *uuid.UUID      `gorm:"column:owner_id;type:uuid"`
	BrokerID        *uuid.UUID      `gorm:"column:broker_id;type:uuid"`

	Note         string    `gorm:"column:note"`
	PurchaseDate string    `gorm:"column:purchase_date;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
