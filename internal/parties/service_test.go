package parties

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
	"github.com/nairmotors/dealerbook-backend/pkg/enums"
	apperrors "github.com/nairmotors/dealerbook-backend/pkg/errors"
)

type fakePartyRepo struct {
	parties map[uuid.UUID]*models.Party
	created []*models.Party
}

func newFakePartyRepo() *fakePartyRepo {
	return &fakePartyRepo{parties: map[uuid.UUID]*models.Party{}}
}

func (f *fakePartyRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakePartyRepo) Create(ctx context.Context, party *models.Party) error {
	if party.ID == uuid.Nil {
		party.ID = uuid.New()
	}
	f.parties[party.ID] = party
	f.created = append(f.created, party)
	return nil
}

func (f *fakePartyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Party, error) {
	party, ok := f.parties[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return party, nil
}

func (f *fakePartyRepo) ListByKind(ctx context.Context, kind enums.PersonType) ([]models.Party, error) {
	var out []models.Party
	for _, p := range f.parties {
		if p.Kind == kind {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeTxnRepo struct {
	byParty map[uuid.UUID][]models.PersonTransaction
	byNo    map[int64]*models.PersonTransaction
}

func (f *fakeTxnRepo) WithTx(tx *gorm.DB) TransactionRepository { return f }

func (f *fakeTxnRepo) Create(ctx context.Context, txn *models.PersonTransaction) error { return nil }

func (f *fakeTxnRepo) GetByTransactionNo(ctx context.Context, transactionNo int64) (*models.PersonTransaction, error) {
	if txn, ok := f.byNo[transactionNo]; ok {
		return txn, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTxnRepo) ListByParty(ctx context.Context, partyID uuid.UUID, limit int) ([]models.PersonTransaction, error) {
	return f.byParty[partyID], nil
}

func (f *fakeTxnRepo) ListByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]models.PersonTransaction, error) {
	return nil, nil
}

func TestCreatePartyValidation(t *testing.T) {
	svc, err := NewService(newFakePartyRepo(), &fakeTxnRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.CreateParty(ctx, CreatePartyInput{Kind: enums.PersonTypeBroker, Name: "   "}); err == nil {
		t.Fatal("expected error for blank name")
	}
	if _, err := svc.CreateParty(ctx, CreatePartyInput{Kind: "vendor", Name: "Ravi"}); err == nil {
		t.Fatal("expected error for invalid kind")
	}

	party, err := svc.CreateParty(ctx, CreatePartyInput{
		Kind:  enums.PersonTypeCustomer,
		Name:  " Ravi Kumar ",
		Phone: "9876543210",
	})
	if err != nil {
		t.Fatalf("create party: %v", err)
	}
	if party.Name != "Ravi Kumar" {
		t.Fatalf("expected trimmed name, got %q", party.Name)
	}
	if party.Phone == nil || *party.Phone != "9876543210" {
		t.Fatal("expected phone to be stored")
	}
	if party.Address != nil {
		t.Fatal("blank address should stay nil")
	}
}

func TestGetMapsNotFound(t *testing.T) {
	repo := newFakePartyRepo()
	svc, err := NewService(repo, &fakeTxnRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Get(context.Background(), uuid.New())
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeNotFound {
		t.Fatalf("expected not-found app error, got %v", err)
	}

	if _, err := svc.Get(context.Background(), uuid.Nil); err == nil {
		t.Fatal("expected validation error for nil id")
	}
}

func TestTransactionsRequiresParty(t *testing.T) {
	svc, err := NewService(newFakePartyRepo(), &fakeTxnRepo{
		byParty: map[uuid.UUID][]models.PersonTransaction{},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc.Transactions(context.Background(), uuid.Nil, 10); err == nil {
		t.Fatal("expected validation error for nil party id")
	}
	if _, err := svc.PurchaseTransactions(context.Background(), uuid.Nil); err == nil {
		t.Fatal("expected validation error for nil purchase id")
	}
}

func TestTransactionByNo(t *testing.T) {
	svc, err := NewService(newFakePartyRepo(), &fakeTxnRepo{
		byNo: map[int64]*models.PersonTransaction{
			7: {TransactionNo: 7, PersonName: "Ravi Kumar"},
		},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	txn, err := svc.TransactionByNo(context.Background(), 7)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if txn.PersonName != "Ravi Kumar" {
		t.Fatalf("unexpected transaction %+v", txn)
	}

	if _, err := svc.TransactionByNo(context.Background(), 0); err == nil {
		t.Fatal("expected validation error for non-positive number")
	}
	_, err = svc.TransactionByNo(context.Background(), 99)
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeNotFound {
		t.Fatalf("expected not-found app error, got %v", err)
	}
}
