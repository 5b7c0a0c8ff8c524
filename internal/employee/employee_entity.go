package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:text;not null;uniqueIndex:uq_employees_name"`
	Email        string    `gorm:"type:text;index"`
	Team         string    `gorm:"type:text"`
	TotalPtoDays int       `gorm:"type:int;not null;default:20"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
