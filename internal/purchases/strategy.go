package purchases

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
	"github.com/nairmotors/dealerbook-backend/pkg/enums"
)

// Primary-transaction precedence, highest first.
const (
	roleOwner     = "owner"
	roleMiddleMan = "middle_man"
	roleBrokerFee = "broker_fee"
)

var rolePrecedence = map[string]int{
	roleOwner:     3,
	roleMiddleMan: 2,
	roleBrokerFee: 1,
}

// txnContext carries everything a spec needs to decide whether it applies
// and to build its transaction row. Numbers are allocated later, by the
// coordinator, only for specs that actually emit.
type txnContext struct {
	input    RecordPurchaseInput
	purchase *models.Purchase
	owner    *models.Party
	broker   *models.Party

	grandTotal decimal.Decimal
	cash       decimal.Decimal
	bank       decimal.Decimal
	credit     decimal.Decimal
	method     enums.PaymentMethod

	brokerFee decimal.Decimal
	feeCash   decimal.Decimal
	feeBank   decimal.Decimal
	feeCredit decimal.Decimal
	feeMethod enums.PaymentMethod
}

// personTransactionSpec is one row of the strategy table: a role name for
// primary selection plus a builder that returns nil when the spec does not
// apply to this purchase.
type personTransactionSpec struct {
	role  string
	build func(c *txnContext) *models.PersonTransaction
}

// purchaseStrategies maps each purchase type to the transaction specs it can
// emit. Adding a purchase flavor means adding a row here, not another branch
// in the coordinator.
var purchaseStrategies = map[enums.PurchaseType][]personTransactionSpec{
	enums.PurchaseTypeDirect: {
		{role: roleOwner, build: buildOwnerTransaction},
	},
	enums.PurchaseTypeMiddleMan: {
		{role: roleMiddleMan, build: buildMiddleManTransaction},
		{role: roleOwner, build: buildOwnerTransaction},
	},
	enums.PurchaseTypeBroker: {
		{role: roleBrokerFee, build: buildBrokerFeeTransaction},
		{role: roleOwner, build: buildOwnerTransaction},
	},
}

func buildOwnerTransaction(c *txnContext) *models.PersonTransaction {
	if c.owner == nil {
		return nil
	}
	ownerID := c.owner.ID
	return &models.PersonTransaction{
		Type:          enums.PersonTransactionPurchase,
		PersonType:    enums.PersonTypeCustomer,
		PartyID:       &ownerID,
		PersonName:    c.owner.Name,
		PurchaseID:    &c.purchase.ID,
		Amount:        c.grandTotal,
		CashAmount:    c.cash,
		BankAmount:    c.bank,
		CreditAmount:  c.credit,
		PaymentMethod: c.method,
		OrderNo:       &c.purchase.OrderNo,
		Date:          c.purchase.PurchaseDate,
		Description:   fmt.Sprintf("Vehicle purchase, order #%d", c.purchase.OrderNo),
		Status:        enums.TransactionStatusCompleted,
	}
}

func buildMiddleManTransaction(c *txnContext) *models.PersonTransaction {
	if c.input.MiddleManName == "" {
		return nil
	}
	return &models.PersonTransaction{
		Type:          enums.PersonTransactionPurchase,
		PersonType:    enums.PersonTypeMiddleMan,
		PersonName:    c.input.MiddleManName,
		PurchaseID:    &c.purchase.ID,
		Amount:        c.grandTotal,
		CashAmount:    c.cash,
		BankAmount:    c.bank,
		CreditAmount:  c.credit,
		PaymentMethod: c.method,
		OrderNo:       &c.purchase.OrderNo,
		Date:          c.purchase.PurchaseDate,
		Description:   fmt.Sprintf("Vehicle purchase via middle-man, order #%d", c.purchase.OrderNo),
		Status:        enums.TransactionStatusCompleted,
	}
}

func buildBrokerFeeTransaction(c *txnContext) *models.PersonTransaction {
	if c.broker == nil || !c.brokerFee.IsPositive() {
		return nil
	}
	brokerID := c.broker.ID
	return &models.PersonTransaction{
		Type:          enums.PersonTransactionBrokerFee,
		PersonType:    enums.PersonTypeBroker,
		PartyID:       &brokerID,
		PersonName:    c.broker.Name,
		PurchaseID:    &c.purchase.ID,
		Amount:        c.brokerFee,
		CashAmount:    c.feeCash,
		BankAmount:    c.feeBank,
		CreditAmount:  c.feeCredit,
		PaymentMethod: c.feeMethod,
		OrderNo:       &c.purchase.OrderNo,
		Date:          c.purchase.PurchaseDate,
		Description:   fmt.Sprintf("Broker fee, order #%d", c.purchase.OrderNo),
		Status:        enums.TransactionStatusCompleted,
	}
}

// inferPurchaseType resolves the purchase flavor: an explicit valid type
// wins, otherwise the populated reference fields decide.
func inferPurchaseType(input RecordPurchaseInput) enums.PurchaseType {
	if parsed, err := enums.ParsePurchaseType(input.PurchaseType); err == nil {
		return parsed
	}
	if input.BrokerID != nil {
		return enums.PurchaseTypeBroker
	}
	if input.MiddleManName != "" {
		return enums.PurchaseTypeMiddleMan
	}
	return enums.PurchaseTypeDirect
}
