package emailsync

import (
	"time"

	"github.com/google/uuid"
)

// SyncLogEntry records one sync pass, successful or not.
type SyncLogEntry struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	LastSync        time.Time `gorm:"type:timestamptz;not null;index"`
	EmailsProcessed int       `gorm:"type:int;not null;default:0"`
	Status          string    `gorm:"type:text;not null"`
	CreatedAt       time.Time
}

func (SyncLogEntry) TableName() string {
	return "email_sync_log"
}
