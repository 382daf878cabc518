package models

import (
	"time"

	"github.com/google/uuid"
)

// BrandVehicle is a per-model stock summary under a brand. Repeat purchases
// of the same model increment Quantity instead of adding another row; the
// unique index makes duplicates a constraint violation rather than a race.
type BrandVehicle struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BrandID   uuid.UUID `gorm:"column:brand_id;type:uuid;not null;uniqueIndex:ux_brand_vehicles_brand_product"`
	ProductID string    `gorm:"column:product_id;not null;uniqueIndex:ux_brand_vehicles_brand_product"`
	Type      string    `gorm:"column:type"`
	ImageURL  string    `gorm:"column:image_url"`
	Quantity  int       `gorm:"column:quantity;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
