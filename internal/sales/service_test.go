package sales

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nairmotors/dealerbook-backend/internal/capital"
	"github.com/nairmotors/dealerbook-backend/internal/parties"
	"github.com/nairmotors/dealerbook-backend/internal/sequence"
	"github.com/nairmotors/dealerbook-backend/pkg/db"
	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
	"github.com/nairmotors/dealerbook-backend/pkg/enums"
	"github.com/nairmotors/dealerbook-backend/pkg/outbox"
)

var salesSchema = []string{
	`CREATE TABLE sequence_counters (
    name TEXT PRIMARY KEY,
    value BIGINT NOT NULL DEFAULT 0,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE capital_accounts (
    type TEXT PRIMARY KEY,
    balance NUMERIC NOT NULL DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE capital_entries (
    id TEXT PRIMARY KEY,
    capital_type TEXT NOT NULL,
    kind TEXT NOT NULL,
    amount NUMERIC NOT NULL,
    order_no BIGINT,
    purchase_id TEXT,
    previous_balance NUMERIC,
    new_balance NUMERIC,
    description TEXT NOT NULL DEFAULT '',
    reason TEXT NOT NULL DEFAULT '',
    occurred_at DATETIME NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE parties (
    id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    name TEXT NOT NULL,
    phone TEXT,
    address TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE person_transactions (
    id TEXT PRIMARY KEY,
    type TEXT NOT NULL,
    person_type TEXT NOT NULL,
    party_id TEXT,
    person_name TEXT NOT NULL,
    purchase_id TEXT,
    amount NUMERIC NOT NULL,
    cash_amount NUMERIC NOT NULL DEFAULT 0,
    bank_amount NUMERIC NOT NULL DEFAULT 0,
    credit_amount NUMERIC NOT NULL DEFAULT 0,
    payment_method TEXT NOT NULL,
    order_no BIGINT,
    transaction_no BIGINT NOT NULL UNIQUE,
    date TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'COMPLETED',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE outbox_events (
    id TEXT PRIMARY KEY,
    event_type TEXT NOT NULL,
    aggregate_type TEXT NOT NULL,
    aggregate_id TEXT NOT NULL,
    payload TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    published_at DATETIME,
    attempt_count INTEGER NOT NULL DEFAULT 0,
    last_error TEXT
)`,
}

type salesEnv struct {
	conn    *gorm.DB
	svc     Service
	capital capital.Service
	parties parties.Repository
	seqRepo sequence.Repository
}

func newSalesEnv(t *testing.T) *salesEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:sales_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	for _, stmt := range salesSchema {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	require.NoError(t, conn.Exec(
		"INSERT INTO sequence_counters (name, value) VALUES (?, 0)", sequence.CounterTransactionNo,
	).Error)

	client := db.NewWithConn(conn)
	capitalSvc, err := capital.NewService(client, capital.NewRepository(conn), nil, nil)
	require.NoError(t, err)
	seqRepo := sequence.NewRepository(conn)
	partyRepo := parties.NewRepository(conn)
	outboxSvc := outbox.NewService(outbox.NewRepository(conn), nil)

	svc, err := NewService(client, seqRepo, capitalSvc, partyRepo,
		parties.NewTransactionRepository(conn), outboxSvc, nil, nil)
	require.NoError(t, err)

	return &salesEnv{conn: conn, svc: svc, capital: capitalSvc, parties: partyRepo, seqRepo: seqRepo}
}

func TestRecordPaymentCreditsCapital(t *testing.T) {
	env := newSalesEnv(t)
	ctx := context.Background()

	customer := &models.Party{Kind: enums.PersonTypeCustomer, Name: "Lakshmi Menon"}
	require.NoError(t, env.parties.Create(ctx, customer))

	customerID := customer.ID
	txn, err := env.svc.RecordPayment(ctx, RecordPaymentInput{
		PartyID:    &customerID,
		CashAmount: "30000",
		BankAmount: "120000",
	})
	require.NoError(t, err)

	assert.Equal(t, enums.PersonTransactionPayment, txn.Type)
	assert.Equal(t, enums.PersonTypeCustomer, txn.PersonType)
	assert.Equal(t, "Lakshmi Menon", txn.PersonName)
	assert.Equal(t, int64(1), txn.TransactionNo)
	assert.Equal(t, enums.PaymentMethodMixed, txn.PaymentMethod)
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(150000)))

	cashBal, err := env.capital.Balance(ctx, enums.CapitalTypeCash)
	require.NoError(t, err)
	assert.True(t, cashBal.Equal(decimal.NewFromInt(30000)), "cash credited, got %s", cashBal)
	bankBal, err := env.capital.Balance(ctx, enums.CapitalTypeBank)
	require.NoError(t, err)
	assert.True(t, bankBal.Equal(decimal.NewFromInt(120000)), "bank credited, got %s", bankBal)

	var events int64
	require.NoError(t, env.conn.Model(&models.OutboxEvent{}).
		Where("event_type = ?", enums.EventSalePaymentRecorded).Count(&events).Error)
	assert.Equal(t, int64(1), events)
}

func TestRecordPaymentByNameOnly(t *testing.T) {
	env := newSalesEnv(t)
	ctx := context.Background()

	txn, err := env.svc.RecordPayment(ctx, RecordPaymentInput{
		PersonName: "Walk-in buyer",
		CashAmount: "5000",
	})
	require.NoError(t, err)
	assert.Equal(t, "Walk-in buyer", txn.PersonName)
	assert.Nil(t, txn.PartyID)
	assert.Equal(t, enums.PaymentMethodCash, txn.PaymentMethod)
}

func TestRecordPaymentRejectsEmptyAmounts(t *testing.T) {
	env := newSalesEnv(t)
	ctx := context.Background()

	_, err := env.svc.RecordPayment(ctx, RecordPaymentInput{
		PersonName: "Nobody",
		CashAmount: "",
		BankAmount: "garbage",
	})
	require.Error(t, err)

	value, err := env.seqRepo.Peek(ctx, sequence.CounterTransactionNo)
	require.NoError(t, err)
	assert.Zero(t, value, "rejected payment consumes no transaction number")
}

func TestRecordPaymentUnknownParty(t *testing.T) {
	env := newSalesEnv(t)
	ghost := uuid.New()
	_, err := env.svc.RecordPayment(context.Background(), RecordPaymentInput{
		PartyID:    &ghost,
		CashAmount: "100",
	})
	require.Error(t, err, "unlike purchase references, the payer must exist")
}
