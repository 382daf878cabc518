package purchases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nairmotors/dealerbook-backend/internal/capital"
	"github.com/nairmotors/dealerbook-backend/internal/inventory"
	"github.com/nairmotors/dealerbook-backend/internal/parties"
	"github.com/nairmotors/dealerbook-backend/internal/sequence"
	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
	"github.com/nairmotors/dealerbook-backend/pkg/enums"
	apperrors "github.com/nairmotors/dealerbook-backend/pkg/errors"
	"github.com/nairmotors/dealerbook-backend/pkg/logger"
	"github.com/nairmotors/dealerbook-backend/pkg/metrics"
	"github.com/nairmotors/dealerbook-backend/pkg/outbox"
)

const purchaseDateLayout = "2006-01-02"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service records purchases atomically: numbering, capital debits,
// inventory and person transactions either all commit or none do.
type Service interface {
	Record(ctx context.Context, input RecordPurchaseInput) (*PurchaseResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Purchase, error)
	List(ctx context.Context, limit, offset int) ([]models.Purchase, error)
	NextOrderNumber(ctx context.Context) (int64, error)
}

type service struct {
	tx        txRunner
	repo      Repository
	seqRepo   sequence.Repository
	seqSvc    sequence.Service
	capital   capital.Service
	inventory inventory.Service
	partyRepo parties.Repository
	txnRepo   parties.TransactionRepository
	outbox    outboxPublisher
	metrics   *metrics.TransactionMetrics
	logg      *logger.Logger
}

// NewService builds the purchase coordinator. Metrics and logger are
// optional; everything else is required.
func NewService(
	tx txRunner,
	repo Repository,
	seqRepo sequence.Repository,
	seqSvc sequence.Service,
	capitalSvc capital.Service,
	inventorySvc inventory.Service,
	partyRepo parties.Repository,
	txnRepo parties.TransactionRepository,
	publisher outboxPublisher,
	txnMetrics *metrics.TransactionMetrics,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("purchase repository required")
	}
	if seqRepo == nil {
		return nil, fmt.Errorf("sequence repository required")
	}
	if seqSvc == nil {
		return nil, fmt.Errorf("sequence service required")
	}
	if capitalSvc == nil {
		return nil, fmt.Errorf("capital service required")
	}
	if inventorySvc == nil {
		return nil, fmt.Errorf("inventory service required")
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
		repo:      repo,
		seqRepo:   seqRepo,
		seqSvc:    seqSvc,
		capital:   capitalSvc,
		inventory: inventorySvc,
		partyRepo: partyRepo,
		txnRepo:   txnRepo,
		outbox:    publisher,
		metrics:   txnMetrics,
		logg:      logg,
	}, nil
}

func (s *service) Record(ctx context.Context, input RecordPurchaseInput) (*PurchaseResult, error) {
	started := time.Now()

	if input.BrandID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "brand id is required")
	}
	if input.Vehicle.ProductID == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "vehicle product id is required")
	}
	if input.Vehicle.ChassisNumber == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "vehicle chassis number is required")
	}
	grandTotal := ParseAmount(input.GrandTotal)
	if !grandTotal.IsPositive() {
		return nil, apperrors.New(apperrors.CodeValidation, "grand total must be a positive amount")
	}

	purchaseType := inferPurchaseType(input)
	cash := ParseAmount(input.CashAmount)
	bank := ParseAmount(input.BankAmount)
	credit := ParseAmount(input.CreditAmount)
	method := enums.PaymentMethodFromSplit(cash.IsPositive(), bank.IsPositive(), credit.IsPositive())

	purchaseDate := input.PurchaseDate
	if purchaseDate == "" {
		purchaseDate = time.Now().Format(purchaseDateLayout)
	}

	result := &PurchaseResult{}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		seqRepo := s.seqRepo.WithTx(tx)
		txnRepo := s.txnRepo.WithTx(tx)

		if _, err := s.inventory.Brand(ctx, input.BrandID); err != nil {
			return err
		}
		owner := s.resolveParty(ctx, tx, input.OwnerID, "owner")
		broker := s.resolveParty(ctx, tx, input.BrokerID, "broker")

		orderNo, err := seqRepo.Next(ctx, sequence.CounterOrderNo)
		if err != nil {
			return err
		}

		snapshot, err := json.Marshal(input.Vehicle)
		if err != nil {
			return err
		}
		purchase := &models.Purchase{
			OrderNo:         orderNo,
			PurchaseType:    purchaseType,
			GrandTotal:      grandTotal,
			GSTAmount:       ParseAmount(input.GSTAmount),
			CashAmount:      cash,
			BankAmount:      bank,
			CreditAmount:    credit,
			PaymentMethod:   method,
			BrandID:         input.BrandID,
			VehicleSnapshot: snapshot,
			MiddleManName:   input.MiddleManName,
			Note:            input.Note,
			PurchaseDate:    purchaseDate,
		}
		if owner != nil {
			ownerID := owner.ID
			purchase.OwnerID = &ownerID
		}
		if broker != nil {
			brokerID := broker.ID
			purchase.BrokerID = &brokerID
		}
		if err := repo.Create(ctx, purchase); err != nil {
			return err
		}

		purchaseID := purchase.ID
		if cash.IsPositive() {
			if err := s.capital.Debit(ctx, tx, enums.CapitalTypeCash, cash, &purchaseID, &purchase.OrderNo); err != nil {
				return err
			}
		}
		if bank.IsPositive() {
			if err := s.capital.Debit(ctx, tx, enums.CapitalTypeBank, bank, &purchaseID, &purchase.OrderNo); err != nil {
				return err
			}
		}
		if credit.IsPositive() {
			if err := s.capital.Debit(ctx, tx, enums.CapitalTypeCredit, credit, &purchaseID, &purchase.OrderNo); err != nil {
				return err
			}
		}

		if err := s.inventory.UpsertBrandVehicle(ctx, tx, input.BrandID, input.Vehicle.ProductID, input.Vehicle.Type, input.Vehicle.ImageURL); err != nil {
			return err
		}
		chassis, err := s.inventory.CreateChassis(ctx, tx, input.Vehicle.ChassisNumber)
		if err != nil {
			return err
		}
		vehicle := buildVehicle(input, purchase, chassis, owner, broker)
		if err := s.inventory.CreateVehicle(ctx, tx, vehicle); err != nil {
			return err
		}

		feeCash := ParseAmount(input.BrokerFeeCash)
		feeBank := ParseAmount(input.BrokerFeeBank)
		feeCredit := ParseAmount(input.BrokerFeeCredit)
		if !feeCash.IsPositive() && !feeBank.IsPositive() && !feeCredit.IsPositive() {
			feeCash, feeBank, feeCredit = cash, bank, credit
		}

		tc := &txnContext{
			input:      input,
			purchase:   purchase,
			owner:      owner,
			broker:     broker,
			grandTotal: grandTotal,
			cash:       cash,
			bank:       bank,
			credit:     credit,
			method:     method,
			brokerFee:  ParseAmount(input.BrokerFee),
			feeCash:    feeCash,
			feeBank:    feeBank,
			feeCredit:  feeCredit,
			feeMethod:  enums.PaymentMethodFromSplit(feeCash.IsPositive(), feeBank.IsPositive(), feeCredit.IsPositive()),
		}

		var primary *models.PersonTransaction
		primaryRank := 0
		for _, spec := range purchaseStrategies[purchaseType] {
			txn := spec.build(tc)
			if txn == nil {
				continue
			}
			txnNo, err := seqRepo.Next(ctx, sequence.CounterTransactionNo)
			if err != nil {
				return err
			}
			txn.TransactionNo = txnNo
			if err := txnRepo.Create(ctx, txn); err != nil {
				return err
			}
			result.Transactions = append(result.Transactions, *txn)
			if rank := rolePrecedence[spec.role]; rank > primaryRank {
				primary = txn
				primaryRank = rank
			}
		}

		if primary != nil {
			purchase.TransactionNo = &primary.TransactionNo
			if err := repo.SetTransactionNo(ctx, purchase.ID, primary.TransactionNo); err != nil {
				return err
			}
			result.Primary = primary
		} else {
			// Nothing references a party; hand back a synthetic record so
			// the caller still sees a transaction-shaped summary. It is
			// never persisted and consumes no transaction number.
			result.Primary = syntheticTransaction(tc)
			result.Synthetic = true
		}

		if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventPurchaseRecorded,
			AggregateType: enums.AggregatePurchase,
			AggregateID:   purchase.ID,
			Data: map[string]any{
				"orderNo":       purchase.OrderNo,
				"purchaseType":  purchase.PurchaseType,
				"grandTotal":    purchase.GrandTotal.String(),
				"paymentMethod": purchase.PaymentMethod,
				"brandId":       purchase.BrandID.String(),
			},
			Version: 1,
		}); err != nil {
			return err
		}

		result.Purchase = purchase
		result.Vehicle = vehicle
		return nil
	})
	if err != nil {
		s.metrics.IncFailed("purchase")
		return nil, err
	}

	s.metrics.IncRecorded("purchase", string(method))
	s.metrics.ObserveDuration("purchase", time.Since(started))
	s.seqSvc.RefreshAdvisory(ctx, sequence.CounterOrderNo, result.Purchase.OrderNo)
	if result.Primary != nil && !result.Synthetic {
		s.seqSvc.RefreshAdvisory(ctx, sequence.CounterTransactionNo, result.Primary.TransactionNo)
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderNo(ctx, result.Purchase.OrderNo), "purchase recorded")
	}
	return result, nil
}

// resolveParty loads a referenced party. A missing or unreadable reference
// is logged and dropped rather than failing the purchase.
func (s *service) resolveParty(ctx context.Context, tx *gorm.DB, id *uuid.UUID, role string) *models.Party {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	party, err := s.partyRepo.WithTx(tx).GetByID(ctx, *id)
	if err != nil {
		if s.logg != nil {
			logCtx := s.logg.WithFields(ctx, map[string]any{"role": role, "party_id": id.String()})
			s.logg.Warn(logCtx, "party reference could not be resolved, dropping")
		}
		return nil
	}
	return party
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Purchase, error) {
	if id == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "purchase id is required")
	}
	purchase, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "purchase not found")
		}
		return nil, err
	}
	return purchase, nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]models.Purchase, error) {
	return s.repo.List(ctx, limit, offset)
}

// NextOrderNumber is the advisory preview for the booking form; it reserves
// nothing.
func (s *service) NextOrderNumber(ctx context.Context) (int64, error) {
	return s.seqSvc.NextAdvisory(ctx, sequence.CounterOrderNo)
}

func buildVehicle(input RecordPurchaseInput, purchase *models.Purchase, chassis *models.Chassis, owner, broker *models.Party) *models.Vehicle {
	vehicle := &models.Vehicle{
		BrandID:        input.BrandID,
		ProductID:      input.Vehicle.ProductID,
		ChassisID:      chassis.ID,
		ChassisNumber:  chassis.Number,
		Colour:         input.Vehicle.Colour,
		Condition:      input.Vehicle.Condition,
		Type:           input.Vehicle.Type,
		Year:           input.Vehicle.Year,
		Images:         pq.StringArray(orEmpty(input.Vehicle.Images)),
		NOCDocs:        pq.StringArray(orEmpty(input.Vehicle.NOCDocs)),
		RCDocs:         pq.StringArray(orEmpty(input.Vehicle.RCDocs)),
		InsuranceDocs:  pq.StringArray(orEmpty(input.Vehicle.InsuranceDocs)),
		OtherDocs:      pq.StringArray(orEmpty(input.Vehicle.OtherDocs)),
		Kms:            input.Vehicle.Kms,
		PreviousOwners: input.Vehicle.PreviousOwners,
		PurchasePrice:  purchase.GrandTotal,
		SellingPrice:   ParseAmount(input.Vehicle.SellingPrice),
		PurchaseID:     purchase.ID,
	}
	if owner != nil {
		ownerID := owner.ID
		vehicle.OwnerID = &ownerID
		vehicle.OwnerName = owner.Name
	} else {
		vehicle.OwnerName = input.Vehicle.OwnerName
	}
	if broker != nil {
		brokerID := broker.ID
		vehicle.BrokerID = &brokerID
		vehicle.BrokerName = broker.Name
	}
	return vehicle
}

// syntheticTransaction mirrors what a persisted primary transaction would
// have looked like, minus the allocated number.
func syntheticTransaction(c *txnContext) *models.PersonTransaction {
	name := c.input.MiddleManName
	if name == "" {
		name = c.input.Vehicle.OwnerName
	}
	if name == "" {
		name = "UNKNOWN"
	}
	return &models.PersonTransaction{
		Type:          enums.PersonTransactionPurchase,
		PersonType:    enums.PersonTypeCustomer,
		PersonName:    name,
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

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
