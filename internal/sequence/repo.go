package sequence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
)

// Canonical counter names. Each backs one numbering stream.
const (
	CounterOrderNo       = "max_order_no"
	CounterTransactionNo = "max_transaction_no"
)

// Repository manages persistence for named sequence counters.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Next(ctx context.Context, name string) (int64, error)
	Peek(ctx context.Context, name string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a sequence repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Next advances the counter by one and returns the new value. The UPDATE
// takes the row lock, so concurrent transactions serialize here and no two
// callers can observe the same value. Call inside the enclosing transaction
// via WithTx so an aborted transaction rolls the counter back with it.
func (r *repository) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	res := r.db.WithContext(ctx).
		Raw("UPDATE sequence_counters SET value = value + 1, updated_at = CURRENT_TIMESTAMP WHERE name = ? RETURNING value", name).
		Scan(&value)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		counter := models.SequenceCounter{Name: name, Value: 1}
		if err := r.db.WithContext(ctx).Create(&counter).Error; err != nil {
			return 0, err
		}
		return 1, nil
	}
	return value, nil
}

// Peek reads the current value without advancing it.
func (r *repository) Peek(ctx context.Context, name string) (int64, error) {
	var counter models.SequenceCounter
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return counter.Value, nil
}
