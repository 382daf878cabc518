package parties

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
	"github.com/nairmotors/dealerbook-backend/pkg/enums"
	apperrors "github.com/nairmotors/dealerbook-backend/pkg/errors"
)

// Service exposes the party directory and per-party transaction history.
type Service interface {
	CreateParty(ctx context.Context, input CreatePartyInput) (*models.Party, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Party, error)
	ListByKind(ctx context.Context, kind enums.PersonType) ([]models.Party, error)
	Transactions(ctx context.Context, partyID uuid.UUID, limit int) ([]models.PersonTransaction, error)
	PurchaseTransactions(ctx context.Context, purchaseID uuid.UUID) ([]models.PersonTransaction, error)
	TransactionByNo(ctx context.Context, transactionNo int64) (*models.PersonTransaction, error)
}

// CreatePartyInput captures a new directory entry.
type CreatePartyInput struct {
	Kind    enums.PersonType
	Name    string
	Phone   string
	Address string
}

type service struct {
	repo    Repository
	txnRepo TransactionRepository
}

// NewService wires a parties service with the provided repositories.
func NewService(repo Repository, txnRepo TransactionRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("party repository required")
	}
	if txnRepo == nil {
		return nil, fmt.Errorf("person transaction repository required")
	}
	return &service{repo: repo, txnRepo: txnRepo}, nil
}

func (s *service) CreateParty(ctx context.Context, input CreatePartyInput) (*models.Party, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "party name is required")
	}
	if !input.Kind.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid person type %q", input.Kind))
	}

	party := &models.Party{Kind: input.Kind, Name: name}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		party.Phone = &phone
	}
	if address := strings.TrimSpace(input.Address); address != "" {
		party.Address = &address
	}
	if err := s.repo.Create(ctx, party); err != nil {
		return nil, err
	}
	return party, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Party, error) {
	if id == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "party id is required")
	}
	party, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "party not found")
	}
	if err != nil {
		return nil, err
	}
	return party, nil
}

func (s *service) ListByKind(ctx context.Context, kind enums.PersonType) ([]models.Party, error) {
	if !kind.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid person type %q", kind))
	}
	return s.repo.ListByKind(ctx, kind)
}

func (s *service) Transactions(ctx context.Context, partyID uuid.UUID, limit int) ([]models.PersonTransaction, error) {
	if partyID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "party id is required")
	}
	return s.txnRepo.ListByParty(ctx, partyID, limit)
}

func (s *service) PurchaseTransactions(ctx context.Context, purchaseID uuid.UUID) ([]models.PersonTransaction, error) {
	if purchaseID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "purchase id is required")
	}
	return s.txnRepo.ListByPurchase(ctx, purchaseID)
}

// TransactionByNo looks a receipt up by its transaction number.
func (s *service) TransactionByNo(ctx context.Context, transactionNo int64) (*models.PersonTransaction, error) {
	if transactionNo <= 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "transaction number must be positive")
	}
	txn, err := s.txnRepo.GetByTransactionNo(ctx, transactionNo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "transaction not found")
	}
	if err != nil {
		return nil, err
	}
	return txn, nil
}
