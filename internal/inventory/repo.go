package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
)

// Repository manages persistence for brands, their stock summaries and the
// vehicle records behind them.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	GetBrand(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	GetBrandByName(ctx context.Context, name string) (*models.Brand, error)
	CreateBrand(ctx context.Context, brand *models.Brand) error
	ListBrands(ctx context.Context) ([]models.Brand, error)

	IncrementBrandVehicle(ctx context.Context, brandID uuid.UUID, productID string) (bool, error)
	InsertBrandVehicle(ctx context.Context, row *models.BrandVehicle) error
	ListBrandVehicles(ctx context.Context, brandID uuid.UUID) ([]models.BrandVehicle, error)

	CreateChassis(ctx context.Context, chassis *models.Chassis) error
	CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error
	GetVehicle(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	ListVehiclesByBrand(ctx context.Context, brandID uuid.UUID) ([]models.Vehicle, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an inventory repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) GetBrand(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *repository) GetBrandByName(ctx context.Context, name string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *repository) CreateBrand(ctx context.Context, brand *models.Brand) error {
	return r.db.WithContext(ctx).Create(brand).Error
}

func (r *repository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// IncrementBrandVehicle bumps the stock summary for an existing
// brand/product pair. Returns false when no summary row exists yet.
func (r *repository) IncrementBrandVehicle(ctx context.Context, brandID uuid.UUID, productID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.BrandVehicle{}).
		Where("brand_id = ? AND product_id = ?", brandID, productID).
		Update("quantity", gorm.Expr("quantity + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) InsertBrandVehicle(ctx context.Context, row *models.BrandVehicle) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) ListBrandVehicles(ctx context.Context, brandID uuid.UUID) ([]models.BrandVehicle, error) {
	var rows []models.BrandVehicle
	if err := r.db.WithContext(ctx).
		Where("brand_id = ?", brandID).
		Order("product_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) CreateChassis(ctx context.Context, chassis *models.Chassis) error {
	return r.db.WithContext(ctx).Create(chassis).Error
}

func (r *repository) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *repository) GetVehicle(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *repository) ListVehiclesByBrand(ctx context.Context, brandID uuid.UUID) ([]models.Vehicle, error) {
	var rows []models.Vehicle
	if err := r.db.WithContext(ctx).
		Where("brand_id = ?", brandID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
