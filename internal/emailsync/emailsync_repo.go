package emailsync

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=emailsync_repo.go -destination=mock/emailsync_repo_mock.go -package=mock
type Repository interface {
	LastSuccessfulSync(ctx context.Context) (*time.Time, error)
	AppendLog(ctx context.Context, entry *SyncLogEntry) error
	ListLogs(ctx context.Context, limit int) ([]SyncLogEntry, error)
	MessageProcessed(ctx context.Context, emailID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) LastSuccessfulSync(ctx context.Context) (*time.Time, error) {
	var entry SyncLogEntry
	err := r.db.WithContext(ctx).
		Where("status = ?", "success").
		Order("last_sync DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry.LastSync, nil
}

func (r *repository) AppendLog(ctx context.Context, entry *SyncLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListLogs(ctx context.Context, limit int) ([]SyncLogEntry, error) {
	var entries []SyncLogEntry
	err := r.db.WithContext(ctx).
		Order("last_sync DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// MessageProcessed checks whether an inbox message already produced a leave.
func (r *repository) MessageProcessed(ctx context.Context, emailID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("leaves").
		Where("source_email_id = ?", emailID).
		Count(&count).Error
	return count > 0, err
}
