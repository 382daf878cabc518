package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Vehicle is one inventory record created by a purchase. Editing flows
// outside the purchase path mutate it independently afterwards.
type Vehicle struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BrandID   uuid.UUID `gorm:"column:brand_id;type:uuid;not null;index"`
	ProductID string    `gorm:"column:product_id;not null;index"`

	ChassisID     uuid.UUID `gorm:"column:chassis_id;type:uuid;not null"`
	ChassisNumber string    `gorm:"column:chassis_number;not null"`

	Colour    string `gorm:"column:colour"`
	Condition string `gorm:"column:condition"`
	Type      string `gorm:"column:type"`
	Year      int    `gorm:"column:year"`

	Images        pq.StringArray `gorm:"column:images;type:text[]"`
	NOCDocs       pq.StringArray `gorm:"column:noc_docs;type:text[]"`
	RCDocs        pq.StringArray `gorm:"column:rc_docs;type:text[]"`
	InsuranceDocs pq.StringArray `gorm:"column:insurance_docs;type:text[]"`
	OtherDocs     pq.StringArray `gorm:"column:other_docs;type:text[]"`

	Kms             int        `gorm:"column:kms;not null;default:0"`
	LastServiceDate *time.Time `gorm:"column:last_service_date"`
	PreviousOwners  int        `gorm:"column:previous_owners;not null;default:0"`

	PurchasePrice decimal.Decimal `gorm:"column:purchase_price;type:numeric(20,2);not null"`
	SellingPrice  decimal.Decimal `gorm:"column:selling_price;type:numeric(20,2);not null"`

	OwnerName  string     `gorm:"column:owner_name"`
	BrokerName string     `gorm:"column:broker_name"`
	OwnerID    *uuid.UUID `gorm:"column:owner_id;type:uuid"`
	BrokerID   *uuid.UUID `gorm:"column:broker_id;type:uuid"`

	PurchaseID uuid.UUID `gorm:"column:purchase_id;type:uuid;not null;index"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
