package models

import "time"

// SequenceCounter is a named singleton row backing gap-free number allocation.
// The value only ever moves forward, by exactly one per allocation, under a
// row lock held for the length of the enclosing transaction.
type SequenceCounter struct {
	Name      string    `gorm:"column:name;primaryKey"`
	Value     int64     `gorm:"column:value;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
