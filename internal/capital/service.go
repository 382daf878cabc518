package capital

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nairmotors/dealerbook-backend/pkg/db"
	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
	"github.com/nairmotors/dealerbook-backend/pkg/enums"
	apperrors "github.com/nairmotors/dealerbook-backend/pkg/errors"
	"github.com/nairmotors/dealerbook-backend/pkg/logger"
	"github.com/nairmotors/dealerbook-backend/pkg/outbox"
)

// Service maintains the three dealership capital balances and their audit
// trail. Every balance move appends exactly one entry in the same
// transaction, so replaying entries over the starting balance always
// reproduces the stored balance.
type Service interface {
	Debit(ctx context.Context, tx *gorm.DB, capitalType enums.CapitalType, amount decimal.Decimal, purchaseID *uuid.UUID, orderNo *int64) error
	Credit(ctx context.Context, tx *gorm.DB, capitalType enums.CapitalType, amount decimal.Decimal, purchaseID *uuid.UUID, orderNo *int64) error
	Adjust(ctx context.Context, input AdjustInput) (*models.CapitalAccount, error)
	SetBalance(ctx context.Context, input SetBalanceInput) (*models.CapitalAccount, error)
	SetInitial(ctx context.Context, input SetInitialInput) (*models.CapitalAccount, error)
	Balance(ctx context.Context, capitalType enums.CapitalType) (decimal.Decimal, error)
	Entries(ctx context.Context, capitalType enums.CapitalType, limit int) ([]models.CapitalEntry, error)
}

// AdjustInput moves a balance by a signed amount.
type AdjustInput struct {
	Type        enums.CapitalType
	Amount      decimal.Decimal
	Description string
	Reason      string
}

// SetBalanceInput overwrites a balance, keeping the before/after audit pair.
type SetBalanceInput struct {
	Type        enums.CapitalType
	NewBalance  decimal.Decimal
	Description string
	Reason      string
}

// SetInitialInput seeds a balance for an account that has never been written.
type SetInitialInput struct {
	Type        enums.CapitalType
	Amount      decimal.Decimal
	Description string
}

type service struct {
	client *db.Client
	repo   Repository
	events *outbox.Service
	logg   *logger.Logger
}

// NewService wires a capital service with the provided dependencies. The
// outbox service is optional.
func NewService(client *db.Client, repo Repository, events *outbox.Service, logg *logger.Logger) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("capital repository required")
	}
	return &service{client: client, repo: repo, events: events, logg: logg}, nil
}

// Debit subtracts a purchase payment from the account inside the caller's
// transaction. Amount must be positive; callers skip zero amounts.
func (s *service) Debit(ctx context.Context, tx *gorm.DB, capitalType enums.CapitalType, amount decimal.Decimal, purchaseID *uuid.UUID, orderNo *int64) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	if !capitalType.IsValid() {
		return apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid capital type %q", capitalType))
	}
	if !amount.IsPositive() {
		return apperrors.New(apperrors.CodeValidation, "debit amount must be positive")
	}

	repo := s.repo.WithTx(tx)
	account, err := s.loadOrInit(ctx, repo, capitalType)
	if err != nil {
		return err
	}
	account.Balance = account.Balance.Sub(amount)
	if err := repo.Save(ctx, account); err != nil {
		return err
	}
	return repo.AppendEntry(ctx, &models.CapitalEntry{
		CapitalType: capitalType,
		Kind:        enums.CapitalEntryPurchaseDebit,
		Amount:      amount,
		OrderNo:     orderNo,
		PurchaseID:  purchaseID,
		OccurredAt:  time.Now(),
	})
}

// Credit adds a sale payment to the account inside the caller's transaction.
func (s *service) Credit(ctx context.Context, tx *gorm.DB, capitalType enums.CapitalType, amount decimal.Decimal, purchaseID *uuid.UUID, orderNo *int64) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	if !capitalType.IsValid() {
		return apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid capital type %q", capitalType))
	}
	if !amount.IsPositive() {
		return apperrors.New(apperrors.CodeValidation, "credit amount must be positive")
	}

	repo := s.repo.WithTx(tx)
	account, err := s.loadOrInit(ctx, repo, capitalType)
	if err != nil {
		return err
	}
	account.Balance = account.Balance.Add(amount)
	if err := repo.Save(ctx, account); err != nil {
		return err
	}
	return repo.AppendEntry(ctx, &models.CapitalEntry{
		CapitalType: capitalType,
		Kind:        enums.CapitalEntrySaleCredit,
		Amount:      amount,
		OrderNo:     orderNo,
		PurchaseID:  purchaseID,
		OccurredAt:  time.Now(),
	})
}

// Adjust moves the balance by a signed amount in its own transaction.
func (s *service) Adjust(ctx context.Context, input AdjustInput) (*models.CapitalAccount, error) {
	if !input.Type.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid capital type %q", input.Type))
	}
	// Zero is a valid manual add; it leaves an audit entry without moving
	// the balance.
	kind := enums.CapitalEntryManualAdd
	if input.Amount.IsNegative() {
		kind = enums.CapitalEntryManualSubtract
	}

	var updated *models.CapitalAccount
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		account, err := s.loadOrInit(ctx, repo, input.Type)
		if err != nil {
			return err
		}
		account.Balance = account.Balance.Add(input.Amount)
		if err := repo.Save(ctx, account); err != nil {
			return err
		}
		if err := repo.AppendEntry(ctx, &models.CapitalEntry{
			CapitalType: input.Type,
			Kind:        kind,
			Amount:      input.Amount.Abs(),
			Description: input.Description,
			Reason:      input.Reason,
			OccurredAt:  time.Now(),
		}); err != nil {
			return err
		}
		updated = account
		return s.emitAdjusted(ctx, tx, account, string(kind))
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetBalance overwrites the balance, recording the previous and new values
// plus the absolute difference on the audit entry.
func (s *service) SetBalance(ctx context.Context, input SetBalanceInput) (*models.CapitalAccount, error) {
	if !input.Type.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid capital type %q", input.Type))
	}

	var updated *models.CapitalAccount
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		account, err := s.loadOrInit(ctx, repo, input.Type)
		if err != nil {
			return err
		}
		previous := account.Balance
		account.Balance = input.NewBalance
		if err := repo.Save(ctx, account); err != nil {
			return err
		}
		newBalance := input.NewBalance
		if err := repo.AppendEntry(ctx, &models.CapitalEntry{
			CapitalType:     input.Type,
			Kind:            enums.CapitalEntryManualEdit,
			Amount:          input.NewBalance.Sub(previous).Abs(),
			PreviousBalance: &previous,
			NewBalance:      &newBalance,
			Description:     input.Description,
			Reason:          input.Reason,
			OccurredAt:      time.Now(),
		}); err != nil {
			return err
		}
		updated = account
		return s.emitAdjusted(ctx, tx, account, string(enums.CapitalEntryManualEdit))
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetInitial seeds an account that has no row yet. An already-initialized
// account makes this a logged no-op, not an error.
func (s *service) SetInitial(ctx context.Context, input SetInitialInput) (*models.CapitalAccount, error) {
	if !input.Type.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid capital type %q", input.Type))
	}

	var updated *models.CapitalAccount
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		existing, err := repo.Get(ctx, input.Type)
		if err == nil {
			if s.logg != nil {
				s.logg.Warn(s.logg.WithField(ctx, "capital_type", string(input.Type)), "capital account already initialized, skipping")
			}
			updated = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		account := &models.CapitalAccount{Type: input.Type, Balance: input.Amount}
		if err := repo.Create(ctx, account); err != nil {
			return err
		}
		if err := repo.AppendEntry(ctx, &models.CapitalEntry{
			CapitalType: input.Type,
			Kind:        enums.CapitalEntryInitialBalance,
			Amount:      input.Amount.Abs(),
			Description: input.Description,
			OccurredAt:  time.Now(),
		}); err != nil {
			return err
		}
		updated = account
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Balance reads the current balance. Accounts that were never written
// report zero.
func (s *service) Balance(ctx context.Context, capitalType enums.CapitalType) (decimal.Decimal, error) {
	if !capitalType.IsValid() {
		return decimal.Zero, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid capital type %q", capitalType))
	}
	account, err := s.repo.Get(ctx, capitalType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

func (s *service) Entries(ctx context.Context, capitalType enums.CapitalType, limit int) ([]models.CapitalEntry, error) {
	if !capitalType.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid capital type %q", capitalType))
	}
	return s.repo.ListEntries(ctx, capitalType, limit)
}

func (s *service) loadOrInit(ctx context.Context, repo Repository, capitalType enums.CapitalType) (*models.CapitalAccount, error) {
	account, err := repo.Get(ctx, capitalType)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	account = &models.CapitalAccount{Type: capitalType, Balance: decimal.Zero}
	if err := repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *service) emitAdjusted(ctx context.Context, tx *gorm.DB, account *models.CapitalAccount, kind string) error {
	if s.events == nil {
		return nil
	}
	return s.events.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventCapitalAdjusted,
		AggregateType: enums.AggregateCapitalAccount,
		AggregateID:   uuid.NewSHA1(uuid.NameSpaceOID, []byte(account.Type)),
		Data: map[string]any{
			"capitalType": account.Type,
			"balance":     account.Balance.String(),
			"kind":        kind,
		},
		Version: 1,
	})
}
