package models

import (
	"time"

	"github.com/google/uuid"
)

// Chassis is the uniqueness side-record for a vehicle's chassis number,
// created alongside the vehicle in the same transaction.
type Chassis struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Number    string    `gorm:"column:number;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps GORM on the migration's table; the default pluralizer
// turns "chassis" into "chasses".
func (Chassis) TableName() string {
	return "chassis"
}
