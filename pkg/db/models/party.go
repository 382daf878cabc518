package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nairmotors/dealerbook-backend/pkg/enums"
)

// Party is an entry in the dealership's directory: a customer, a broker or a
// middle-man. The purchase path only ever reads these rows.
type Party struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Kind      enums.PersonType `gorm:"column:kind;not null;index"`
	Name      string           `gorm:"column:name;not null"`
	Phone     *string          `gorm:"column:phone"`
	Address   *string          `gorm:"column:address"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
