package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nairmotors/dealerbook-backend/pkg/enums"
)

// PersonTransaction is a ledger movement attributed to a specific party
// rather than to a capital account. Immutable once written.
type PersonTransaction struct {
	ID         uuid.UUID                   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Type       enums.PersonTransactionType `gorm:"column:type;not null"`
	PersonType enums.PersonType            `gorm:"column:person_type;not null"`
	PartyID    *uuid.UUID                  `gorm:"column:party_id;type:uuid;index"`
	PersonName string                      `gorm:"column:person_name;not null"`

	PurchaseID *uuid.UUID `gorm:"column:purchase_id;type:uuid;index"`

	Amount        decimal.Decimal     `gorm:"column:amount;type:numeric(20,2);not null"`
	CashAmount    decimal.Decimal     `gorm:"column:cash_amount;type:numeric(20,2);not null"`
	BankAmount    decimal.Decimal     `gorm:"column:bank_amount;type:numeric(20,2);not null"`
	CreditAmount  decimal.Decimal     `gorm:"column:credit_amount;type:numeric(20,2);not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;not null"`

	OrderNo       *int64                  `gorm:"column:order_no"`
	TransactionNo int64                   `gorm:"column:transaction_no;not null;uniqueIndex"`
	Date          string                  `gorm:"column:date;not null"`
	Description   string                  `gorm:"column:description"`
	Status        enums.TransactionStatus `gorm:"column:status;not null"`
	CreatedAt     time.Time               `gorm:"column:created_at;autoCreateTime"`
}
