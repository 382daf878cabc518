package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Brand groups vehicles by manufacturer and carries its known model names.
type Brand struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string         `gorm:"column:name;not null;uniqueIndex"`
	Models    pq.StringArray `gorm:"column:models;type:text[]"`
	Vehicles  []BrandVehicle `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
