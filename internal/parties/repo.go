package parties

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
	"github.com/nairmotors/dealerbook-backend/pkg/enums"
)

// Repository manages persistence for the party directory.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, party *models.Party) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Party, error)
	ListByKind(ctx context.Context, kind enums.PersonType) ([]models.Party, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a party repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, party *models.Party) error {
	return r.db.WithContext(ctx).Create(party).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Party, error) {
	var party models.Party
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&party).Error; err != nil {
		return nil, err
	}
	return &party, nil
}

func (r *repository) ListByKind(ctx context.Context, kind enums.PersonType) ([]models.Party, error) {
	var rows []models.Party
	if err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
