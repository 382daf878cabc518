package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbpkg "github.com/nairmotors/dealerbook-backend/pkg/db"
	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
	apperrors "github.com/nairmotors/dealerbook-backend/pkg/errors"
)

// Service exposes the inventory operations the purchase path and the API
// need: brand reads, the stock summary upsert and vehicle creation.
type Service interface {
	Brand(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	BrandDetail(ctx context.Context, id uuid.UUID) (*models.Brand, []models.BrandVehicle, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
	CreateBrand(ctx context.Context, name string, modelNames []string) (*models.Brand, error)

	UpsertBrandVehicle(ctx context.Context, tx *gorm.DB, brandID uuid.UUID, productID, vehicleType, imageURL string) error
	CreateChassis(ctx context.Context, tx *gorm.DB, number string) (*models.Chassis, error)
	CreateVehicle(ctx context.Context, tx *gorm.DB, vehicle *models.Vehicle) error
	Vehicle(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
}

type service struct {
	repo Repository
}

// NewService wires an inventory service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Brand(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	if id == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "brand id is required")
	}
	brand, err := s.repo.GetBrand(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "brand not found")
	}
	if err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *service) BrandDetail(ctx context.Context, id uuid.UUID) (*models.Brand, []models.BrandVehicle, error) {
	brand, err := s.Brand(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	summaries, err := s.repo.ListBrandVehicles(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return brand, summaries, nil
}

func (s *service) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return s.repo.ListBrands(ctx)
}

func (s *service) CreateBrand(ctx context.Context, name string, modelNames []string) (*models.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "brand name is required")
	}
	if modelNames == nil {
		modelNames = []string{}
	}
	brand := &models.Brand{Name: name, Models: modelNames}
	if err := s.repo.CreateBrand(ctx, brand); err != nil {
		if dbpkg.IsUniqueViolation(err, "idx_brands_name") {
			return nil, apperrors.New(apperrors.CodeConflict, fmt.Sprintf("brand %q already exists", name))
		}
		return nil, err
	}
	return brand, nil
}

// UpsertBrandVehicle keeps one summary row per brand/product pair:
// increment when present, insert with quantity 1 otherwise. A concurrent
// insert loses to the unique index and retries as an increment.
func (s *service) UpsertBrandVehicle(ctx context.Context, tx *gorm.DB, brandID uuid.UUID, productID, vehicleType, imageURL string) error {
	productID = strings.TrimSpace(productID)
	if brandID == uuid.Nil || productID == "" {
		return apperrors.New(apperrors.CodeValidation, "brand id and product id are required")
	}

	repo := s.repo.WithTx(tx)
	bumped, err := repo.IncrementBrandVehicle(ctx, brandID, productID)
	if err != nil {
		return err
	}
	if bumped {
		return nil
	}

	row := &models.BrandVehicle{
		BrandID:   brandID,
		ProductID: productID,
		Type:      vehicleType,
		ImageURL:  imageURL,
		Quantity:  1,
	}
	if err := repo.InsertBrandVehicle(ctx, row); err != nil {
		if dbpkg.IsUniqueViolation(err, "ux_brand_vehicles_brand_product") {
			if _, retryErr := repo.IncrementBrandVehicle(ctx, brandID, productID); retryErr != nil {
				return retryErr
			}
			return nil
		}
		return err
	}
	return nil
}

func (s *service) CreateChassis(ctx context.Context, tx *gorm.DB, number string) (*models.Chassis, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "chassis number is required")
	}
	chassis := &models.Chassis{Number: number}
	if err := s.repo.WithTx(tx).CreateChassis(ctx, chassis); err != nil {
		if dbpkg.IsUniqueViolation(err, "idx_chassis_number") {
			return nil, apperrors.New(apperrors.CodeConflict, fmt.Sprintf("chassis %q already recorded", number))
		}
		return nil, err
	}
	return chassis, nil
}

func (s *service) CreateVehicle(ctx context.Context, tx *gorm.DB, vehicle *models.Vehicle) error {
	if vehicle == nil {
		return apperrors.New(apperrors.CodeValidation, "vehicle payload is required")
	}
	if vehicle.BrandID == uuid.Nil || strings.TrimSpace(vehicle.ProductID) == "" {
		return apperrors.New(apperrors.CodeValidation, "vehicle brand and product are required")
	}
	return s.repo.WithTx(tx).CreateVehicle(ctx, vehicle)
}

func (s *service) Vehicle(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	if id == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "vehicle id is required")
	}
	vehicle, err := s.repo.GetVehicle(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "vehicle not found")
	}
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}
