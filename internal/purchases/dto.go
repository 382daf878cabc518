package purchases

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
)

// RecordPurchaseInput captures one vehicle acquisition. Monetary fields
// arrive as strings from the client; see ParseAmount for their semantics.
type RecordPurchaseInput struct {
	PurchaseType string       `json:"purchase_type"`
	BrandID      uuid.UUID    `json:"brand_id" validate:"required"`
	Vehicle      VehicleInput `json:"vehicle" validate:"required"`

	GrandTotal string `json:"grand_total" validate:"required"`
	GSTAmount  string `json:"gst_amount"`

	CashAmount   string `json:"cash_amount"`
	BankAmount   string `json:"bank_amount"`
	CreditAmount string `json:"credit_amount"`

	OwnerID  *uuid.UUID `json:"owner_id"`
	BrokerID *uuid.UUID `json:"broker_id"`

	// Broker fee and its optional dedicated payment split. When no split
	// field is positive the fee transaction records the main split.
	BrokerFee       string `json:"broker_fee"`
	BrokerFeeCash   string `json:"broker_fee_cash"`
	BrokerFeeBank   string `json:"broker_fee_bank"`
	BrokerFeeCredit string `json:"broker_fee_credit"`

	MiddleManName string `json:"middle_man_name"`

	Note         string `json:"note"`
	PurchaseDate string `json:"purchase_date"`
}

// VehicleInput is the inventory payload embedded in a purchase.
type VehicleInput struct {
	ProductID     string `json:"product_id" validate:"required"`
	ChassisNumber string `json:"chassis_number" validate:"required"`

	// Free-text seller name for when the owner is not a registered party.
	OwnerName string `json:"owner_name"`

	Colour    string `json:"colour"`
	Condition string `json:"condition"`
	Type      string `json:"type"`
	Year      int    `json:"year"`
	ImageURL  string `json:"image_url"`

	Images        []string `json:"images"`
	NOCDocs       []string `json:"noc_docs"`
	RCDocs        []string `json:"rc_docs"`
	InsuranceDocs []string `json:"insurance_docs"`
	OtherDocs     []string `json:"other_docs"`

	Kms            int    `json:"kms"`
	PreviousOwners int    `json:"previous_owners"`
	SellingPrice   string `json:"selling_price"`
}

// PurchaseResult is what the coordinator hands back after the transaction
// commits. When Synthetic is true the Primary transaction was built for the
// response only and never persisted.
type PurchaseResult struct {
	Purchase     *models.Purchase           `json:"purchase"`
	Vehicle      *models.Vehicle            `json:"vehicle"`
	Transactions []models.PersonTransaction `json:"transactions"`
	Primary      *models.PersonTransaction  `json:"primary_transaction"`
	Synthetic    bool                       `json:"synthetic"`
}

// ParseAmount converts a client-supplied money string into a decimal.
// Blank, unparsable and negative values all collapse to zero so a malformed
// split degrades to "not paid from this account" instead of failing the
// whole purchase.
func ParseAmount(raw string) decimal.Decimal {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero
	}
	if value.IsNegative() {
		return decimal.Zero
	}
	return value
}
