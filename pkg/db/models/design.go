package models

import (
	"time"

	"github.com/google/uuid"
)

// Design is a customer hat design that quotes attach to.
type Design struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	CustomerName string    `gorm:"column:customer_name"`
	Notes        string    `gorm:"column:notes"`
	CreatedByID  uuid.UUID `gorm:"column:created_by_id;type:uuid;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
