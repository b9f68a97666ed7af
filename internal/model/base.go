package model

import (
	"time"
)

// Base carries the store-managed identity and timestamps shared by every entity.
// GORM fills CreatedAt and UpdatedAt.
type Base struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (b Base) GetID() uint {
	return b.ID
}
