package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nairmotors/dealerbook-backend/internal/capital"
	"github.com/nairmotors/dealerbook-backend/internal/parties"
	"github.com/nairmotors/dealerbook-backend/internal/purchases"
	"github.com/nairmotors/dealerbook-backend/internal/sequence"
	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
	"github.com/nairmotors/dealerbook-backend/pkg/enums"
	apperrors "github.com/nairmotors/dealerbook-backend/pkg/errors"
	"github.com/nairmotors/dealerbook-backend/pkg/logger"
	"github.com/nairmotors/dealerbook-backend/pkg/metrics"
	"github.com/nairmotors/dealerbook-backend/pkg/outbox"
)

const paymentDateLayout = "2006-01-02"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// RecordPaymentInput carries a customer payment against a sale or an EMI
// installment. Amounts arrive as raw strings from the API layer.
type RecordPaymentInput struct {
	PartyID    *uuid.UUID `json:"party_id"`
	PersonName string     `json:"person_name"`
	PurchaseID *uuid.UUID `json:"purchase_id"`

	CashAmount   string `json:"cash_amount"`
	BankAmount   string `json:"bank_amount"`
	CreditAmount string `json:"credit_amount"`

	Date        string `json:"date"`
	Description string `json:"description"`
}

// Service records customer payments into the capital ledger. Payment
// history reads live on the parties service.
type Service interface {
	RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.PersonTransaction, error)
}

type service struct {
	tx        txRunner
	seqRepo   sequence.Repository
	capital   capital.Service
	partyRepo parties.Repository
	txnRepo   parties.TransactionRepository
	outbox    outboxPublisher
	metrics   *metrics.TransactionMetrics
	logg      *logger.Logger
}

func NewService(
	tx txRunner,
	seqRepo sequence.Repository,
	capitalSvc capital.Service,
	partyRepo parties.Repository,
	txnRepo parties.TransactionRepository,
	publisher outboxPublisher,
	txnMetrics *metrics.TransactionMetrics,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if seqRepo == nil {
		return nil, fmt.Errorf("sequence repository required")
	}
	if capitalSvc == nil {
		return nil, fmt.Errorf("capital service required")
	}
	if partyRepo == nil {
		return nil, fmt.Errorf("party repository required")
	}
	if txnRepo == nil {
		return nil, fmt.Errorf("person transaction repository required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{
		tx:        tx,
		seqRepo:   seqRepo,
		capital:   capitalSvc,
		partyRepo: partyRepo,
		txnRepo:   txnRepo,
		outbox:    publisher,
		metrics:   txnMetrics,
		logg:      logg,
	}, nil
}

// RecordPayment credits the capital accounts with each positive split and
// writes a completed payment transaction in the same database transaction.
func (s *service) RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.PersonTransaction, error) {
	started := time.Now()

	cash := purchases.ParseAmount(input.CashAmount)
	bank := purchases.ParseAmount(input.BankAmount)
	credit := purchases.ParseAmount(input.CreditAmount)
	total := cash.Add(bank).Add(credit)
	if !total.IsPositive() {
		return nil, apperrors.New(apperrors.CodeValidation, "payment requires at least one positive amount")
	}

	personName := strings.TrimSpace(input.PersonName)
	if input.PartyID != nil && *input.PartyID != uuid.Nil {
		party, err := s.partyRepo.GetByID(ctx, *input.PartyID)
		if err != nil {
			return nil, apperrors.New(apperrors.CodeNotFound, "payer not found")
		}
		personName = party.Name
	}
	if personName == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "payer name or party id is required")
	}

	date := input.Date
	if date == "" {
		date = time.Now().Format(paymentDateLayout)
	}
	method := enums.PaymentMethodFromSplit(cash.IsPositive(), bank.IsPositive(), credit.IsPositive())

	var txn *models.PersonTransaction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txnNo, err := s.seqRepo.WithTx(tx).Next(ctx, sequence.CounterTransactionNo)
		if err != nil {
			return err
		}

		if cash.IsPositive() {
			if err := s.capital.Credit(ctx, tx, enums.CapitalTypeCash, cash, input.PurchaseID, nil); err != nil {
				return err
			}
		}
		if bank.IsPositive() {
			if err := s.capital.Credit(ctx, tx, enums.CapitalTypeBank, bank, input.PurchaseID, nil); err != nil {
				return err
			}
		}
		if credit.IsPositive() {
			if err := s.capital.Credit(ctx, tx, enums.CapitalTypeCredit, credit, input.PurchaseID, nil); err != nil {
				return err
			}
		}

		txn = &models.PersonTransaction{
			Type:          enums.PersonTransactionPayment,
			PersonType:    enums.PersonTypeCustomer,
			PartyID:       input.PartyID,
			PersonName:    personName,
			PurchaseID:    input.PurchaseID,
			Amount:        total,
			CashAmount:    cash,
			BankAmount:    bank,
			CreditAmount:  credit,
			PaymentMethod: method,
			TransactionNo: txnNo,
			Date:          date,
			Description:   input.Description,
			Status:        enums.TransactionStatusCompleted,
		}
		if err := s.txnRepo.WithTx(tx).Create(ctx, txn); err != nil {
			return err
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventSalePaymentRecorded,
			AggregateType: enums.AggregatePersonTransaction,
			AggregateID:   txn.ID,
			Data: map[string]any{
				"transactionNo": txn.TransactionNo,
				"personName":    txn.PersonName,
				"amount":        txn.Amount.String(),
				"paymentMethod": txn.PaymentMethod,
			},
			Version: 1,
		})
	})
	if err != nil {
		s.metrics.IncFailed("sale_payment")
		return nil, err
	}

	s.metrics.IncRecorded("sale_payment", string(method))
	s.metrics.ObserveDuration("sale_payment", time.Since(started))
	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{"transaction_no": txn.TransactionNo})
		s.logg.Info(logCtx, "sale payment recorded")
	}
	return txn, nil
}
