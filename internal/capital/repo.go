package capital

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
	"github.com/nairmotors/dealerbook-backend/pkg/enums"
)

// Repository manages persistence for capital accounts and their entries.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Get(ctx context.Context, capitalType enums.CapitalType) (*models.CapitalAccount, error)
	Save(ctx context.Context, account *models.CapitalAccount) error
	Create(ctx context.Context, account *models.CapitalAccount) error
	AppendEntry(ctx context.Context, entry *models.CapitalEntry) error
	ListEntries(ctx context.Context, capitalType enums.CapitalType, limit int) ([]models.CapitalEntry, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a capital repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Get loads the account row. Returns gorm.ErrRecordNotFound for accounts
// that have never been written.
func (r *repository) Get(ctx context.Context, capitalType enums.CapitalType) (*models.CapitalAccount, error) {
	var account models.CapitalAccount
	if err := r.db.WithContext(ctx).
		Where("type = ?", capitalType).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *repository) Save(ctx context.Context, account *models.CapitalAccount) error {
	if account == nil {
		return errors.New("account required")
	}
	return r.db.WithContext(ctx).
		Model(&models.CapitalAccount{}).
		Where("type = ?", account.Type).
		Update("balance", account.Balance).Error
}

func (r *repository) Create(ctx context.Context, account *models.CapitalAccount) error {
	if account == nil {
		return errors.New("account required")
	}
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *repository) AppendEntry(ctx context.Context, entry *models.CapitalEntry) error {
	if entry == nil {
		return errors.New("entry required")
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListEntries(ctx context.Context, capitalType enums.CapitalType, limit int) ([]models.CapitalEntry, error) {
	var entries []models.CapitalEntry
	q := r.db.WithContext(ctx).
		Where("capital_type = ?", capitalType).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
