package capital

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

	"github.com/nairmotors/dealerbook-backend/pkg/db"
	"github.com/nairmotors/dealerbook-backend/pkg/enums"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:capital_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	for _, stmt := range []string{
		"CREATE TABLE capital_accounts (type TEXT PRIMARY KEY, balance NUMERIC NOT NULL DEFAULT 0, created_at DATETIME DEFAULT CURRENT_TIMESTAMP, updated_at DATETIME DEFAULT CURRENT_TIMESTAMP)",
		`CREATE TABLE capital_entries (
    id TEXT PRIMARY KEY DEFAULT (lower(
        hex(randomblob(4)) || '-' || hex(randomblob(2)) || '-4' ||
        substr(hex(randomblob(2)), 2) || '-a' ||
        substr(hex(randomblob(2)), 2) || '-' || hex(randomblob(6)))),
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
	} {
		require.NoError(t, conn.Exec(stmt).Error)
	}

	client := db.NewWithConn(conn)
	svc, err := NewService(client, NewRepository(conn), nil, nil)
	require.NoError(t, err)
	return svc, conn
}

func TestDebitMovesBalanceAndAppendsEntry(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	_, err := svc.SetInitial(ctx, SetInitialInput{Type: enums.CapitalTypeCash, Amount: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	purchaseID := uuid.New()
	orderNo := int64(7)
	err = conn.Transaction(func(tx *gorm.DB) error {
		return svc.Debit(ctx, tx, enums.CapitalTypeCash, decimal.NewFromInt(250), &purchaseID, &orderNo)
	})
	require.NoError(t, err)

	balance, err := svc.Balance(ctx, enums.CapitalTypeCash)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(750)), "expected 750, got %s", balance)

	entries, err := svc.Entries(ctx, enums.CapitalTypeCash, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	debit := entries[0]
	assert.Equal(t, enums.CapitalEntryPurchaseDebit, debit.Kind)
	assert.True(t, debit.Amount.Equal(decimal.NewFromInt(250)))
	require.NotNil(t, debit.PurchaseID)
	assert.Equal(t, purchaseID, *debit.PurchaseID)
}

func TestDebitAllowsNegativeBalance(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	err := conn.Transaction(func(tx *gorm.DB) error {
		return svc.Debit(ctx, tx, enums.CapitalTypeCredit, decimal.NewFromInt(300), nil, nil)
	})
	require.NoError(t, err)

	balance, err := svc.Balance(ctx, enums.CapitalTypeCredit)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(-300)), "expected -300, got %s", balance)
}

func TestDebitRejectsNonPositiveAmount(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	err := conn.Transaction(func(tx *gorm.DB) error {
		return svc.Debit(ctx, tx, enums.CapitalTypeCash, decimal.Zero, nil, nil)
	})
	require.Error(t, err)

	err = conn.Transaction(func(tx *gorm.DB) error {
		return svc.Debit(ctx, tx, enums.CapitalTypeCash, decimal.NewFromInt(-5), nil, nil)
	})
	require.Error(t, err)
}

func TestAdjustSignedAmounts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	account, err := svc.Adjust(ctx, AdjustInput{Type: enums.CapitalTypeBank, Amount: decimal.NewFromInt(500), Reason: "owner deposit"})
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(500)))

	account, err = svc.Adjust(ctx, AdjustInput{Type: enums.CapitalTypeBank, Amount: decimal.NewFromInt(-120), Reason: "bank charges"})
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(380)))

	entries, err := svc.Entries(ctx, enums.CapitalTypeBank, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, enums.CapitalEntryManualSubtract, entries[0].Kind)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(120)), "entry stores the absolute amount")
	assert.Equal(t, enums.CapitalEntryManualAdd, entries[1].Kind)

	account, err = svc.Adjust(ctx, AdjustInput{Type: enums.CapitalTypeBank, Amount: decimal.Zero, Reason: "audit marker"})
	require.NoError(t, err, "zero counts as a manual add")
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(380)))

	entries, err = svc.Entries(ctx, enums.CapitalTypeBank, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, enums.CapitalEntryManualAdd, entries[0].Kind)
	assert.True(t, entries[0].Amount.IsZero())
}

func TestSetBalanceRecordsPreviousAndNew(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SetInitial(ctx, SetInitialInput{Type: enums.CapitalTypeCash, Amount: decimal.NewFromInt(900)})
	require.NoError(t, err)

	account, err := svc.SetBalance(ctx, SetBalanceInput{
		Type:       enums.CapitalTypeCash,
		NewBalance: decimal.NewFromInt(650),
		Reason:     "till recount",
	})
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(650)))

	entries, err := svc.Entries(ctx, enums.CapitalTypeCash, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	edit := entries[0]
	assert.Equal(t, enums.CapitalEntryManualEdit, edit.Kind)
	assert.True(t, edit.Amount.Equal(decimal.NewFromInt(250)), "amount is abs(new-previous)")
	require.NotNil(t, edit.PreviousBalance)
	require.NotNil(t, edit.NewBalance)
	assert.True(t, edit.PreviousBalance.Equal(decimal.NewFromInt(900)))
	assert.True(t, edit.NewBalance.Equal(decimal.NewFromInt(650)))
}

func TestSetInitialIsNoopWhenAccountExists(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.SetInitial(ctx, SetInitialInput{Type: enums.CapitalTypeBank, Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.True(t, first.Balance.Equal(decimal.NewFromInt(100)))

	second, err := svc.SetInitial(ctx, SetInitialInput{Type: enums.CapitalTypeBank, Amount: decimal.NewFromInt(999)})
	require.NoError(t, err)
	assert.True(t, second.Balance.Equal(decimal.NewFromInt(100)), "existing balance is untouched")

	entries, err := svc.Entries(ctx, enums.CapitalTypeBank, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBalanceForUnknownAccountIsZero(t *testing.T) {
	svc, _ := newTestService(t)

	balance, err := svc.Balance(context.Background(), enums.CapitalTypeBank)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestEntriesReplayReproducesBalance(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	_, err := svc.SetInitial(ctx, SetInitialInput{Type: enums.CapitalTypeCash, Amount: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	require.NoError(t, conn.Transaction(func(tx *gorm.DB) error {
		return svc.Debit(ctx, tx, enums.CapitalTypeCash, decimal.NewFromInt(400), nil, nil)
	}))
	_, err = svc.Adjust(ctx, AdjustInput{Type: enums.CapitalTypeCash, Amount: decimal.NewFromInt(150)})
	require.NoError(t, err)
	require.NoError(t, conn.Transaction(func(tx *gorm.DB) error {
		return svc.Credit(ctx, tx, enums.CapitalTypeCash, decimal.NewFromInt(75), nil, nil)
	}))

	entries, err := svc.Entries(ctx, enums.CapitalTypeCash, 0)
	require.NoError(t, err)

	replayed := decimal.Zero
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		switch entry.Kind {
		case enums.CapitalEntryInitialBalance, enums.CapitalEntryManualAdd, enums.CapitalEntrySaleCredit:
			replayed = replayed.Add(entry.Amount)
		case enums.CapitalEntryPurchaseDebit, enums.CapitalEntryManualSubtract:
			replayed = replayed.Sub(entry.Amount)
		case enums.CapitalEntryManualEdit:
			replayed = *entry.NewBalance
		}
	}

	balance, err := svc.Balance(ctx, enums.CapitalTypeCash)
	require.NoError(t, err)
	assert.True(t, replayed.Equal(balance), "replayed %s, stored %s", replayed, balance)
}
