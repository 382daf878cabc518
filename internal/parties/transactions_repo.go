package parties

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
)

// TransactionRepository manages persistence for person transactions.
type TransactionRepository interface {
	WithTx(tx *gorm.DB) TransactionRepository
	Create(ctx context.Context, txn *models.PersonTransaction) error
	GetByTransactionNo(ctx context.Context, transactionNo int64) (*models.PersonTransaction, error)
	ListByParty(ctx context.Context, partyID uuid.UUID, limit int) ([]models.PersonTransaction, error)
	ListByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]models.PersonTransaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository returns a person-transaction repository bound to
// the provided database.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) WithTx(tx *gorm.DB) TransactionRepository {
	if tx == nil {
		return r
	}
	return &transactionRepository{db: tx}
}

func (r *transactionRepository) Create(ctx context.Context, txn *models.PersonTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) GetByTransactionNo(ctx context.Context, transactionNo int64) (*models.PersonTransaction, error) {
	var txn models.PersonTransaction
	if err := r.db.WithContext(ctx).
		Where("transaction_no = ?", transactionNo).
		First(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) ListByParty(ctx context.Context, partyID uuid.UUID, limit int) ([]models.PersonTransaction, error) {
	var rows []models.PersonTransaction
	q := r.db.WithContext(ctx).
		Where("party_id = ?", partyID).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *transactionRepository) ListByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]models.PersonTransaction, error) {
	var rows []models.PersonTransaction
	if err := r.db.WithContext(ctx).
		Where("purchase_id = ?", purchaseID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
