package emailsync

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"pto-tracker/internal/employee"
	emailsyncerrors "pto-tracker/internal/emailsync/errors"
	"pto-tracker/internal/leave"
	"pto-tracker/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// HistoryLimit caps the sync-history listing.
	HistoryLimit = 20

	// defaultLookback is how far back the first sync reaches when no
	// successful sync has been recorded yet.
	defaultLookback = 7 * 24 * time.Hour
)

type Service interface {
	Sync(ctx context.Context) (SyncResult, error)
	History(ctx context.Context) ([]SyncLogResponse, error)
}

type service struct {
	repo      Repository
	employees employee.Repository
	leaves    leave.Service
	mail      MailClient
	logger    *zap.Logger

	mu sync.Mutex
}

func NewService(
	repo Repository,
	employees employee.Repository,
	leaves leave.Service,
	mail MailClient,
	logger ...*zap.Logger,
) Service {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{
		repo:      repo,
		employees: employees,
		leaves:    leaves,
		mail:      mail,
		logger:    l.Named("emailsync_service"),
	}
}

// Sync pulls the monitored inbox and records one leave per parseable,
// not-yet-processed message. Only one sync runs at a time; malformed or
// unmatchable messages are skipped, not fatal.
func (s *service) Sync(ctx context.Context) (SyncResult, error) {
	if s.mail == nil {
		return SyncResult{
			Success: false,
			Message: "Mail provider not configured. Set the mail provider credentials to enable email sync.",
		}, nil
	}

	if !s.mu.TryLock() {
		return SyncResult{}, emailsyncerrors.ErrSyncInProgress
	}
	defer s.mu.Unlock()

	since, err := s.syncWindow(ctx)
	if err != nil {
		return SyncResult{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to determine sync window", http.StatusInternalServerError)
	}

	messages, err := s.mail.ListMessages(ctx, since)
	if err != nil {
		s.recordFailure(ctx, err)
		return SyncResult{}, apperror.Wrap(err, apperror.CodeServiceUnavailable, "Failed to fetch emails from mail provider", http.StatusServiceUnavailable)
	}

	processed := 0
	added := 0
	for _, msg := range messages {
		processed++

		done, err := s.repo.MessageProcessed(ctx, msg.ID)
		if err != nil {
			s.recordFailure(ctx, err)
			return SyncResult{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to check processed emails", http.StatusInternalServerError)
		}
		if done {
			continue
		}

		if s.processMessage(ctx, msg) {
			added++
		}
	}

	if err := s.repo.AppendLog(ctx, newLogEntry(processed, "success")); err != nil {
		s.logger.Error("failed to record sync log", zap.Error(err))
	}

	return SyncResult{
		Success:        true,
		ProcessedCount: processed,
		AddedCount:     added,
		Message:        fmt.Sprintf("Processed %d emails, added %d new PTO records", processed, added),
	}, nil
}

func (s *service) History(ctx context.Context) ([]SyncLogResponse, error) {
	entries, err := s.repo.ListLogs(ctx, HistoryLimit)
	if err != nil {
		s.logger.Error("failed to list sync history", zap.Error(err))
		return nil, err
	}

	responses := make([]SyncLogResponse, len(entries))
	for i, e := range entries {
		responses[i] = SyncLogResponse{
			ID:              e.ID.String(),
			LastSync:        e.LastSync,
			EmailsProcessed: e.EmailsProcessed,
			Status:          e.Status,
		}
	}
	return responses, nil
}

// processMessage turns one message into a leave record. Returns true when a
// record was added; every skip is logged with its reason.
func (s *service) processMessage(ctx context.Context, msg Message) bool {
	parsed := ParseMessage(msg.Subject, msg.Body, msg.From)
	if !parsed.Complete() {
		s.logger.Info("skipping email with incomplete leave info",
			zap.String("email_id", msg.ID),
			zap.String("subject", msg.Subject),
		)
		return false
	}

	emp, err := s.employees.FindByEmail(ctx, parsed.EmployeeEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Info("skipping email from unknown employee",
				zap.String("email_id", msg.ID),
				zap.String("employee_email", parsed.EmployeeEmail),
			)
		} else {
			s.logger.Error("employee lookup failed during email sync",
				zap.String("email_id", msg.ID),
				zap.Error(err),
			)
		}
		return false
	}

	_, err = s.leaves.Create(ctx, leave.CreateLeaveRequest{
		EmployeeID:    emp.ID.String(),
		LeaveType:     parsed.LeaveType,
		StartDate:     parsed.StartDate,
		EndDate:       parsed.EndDate,
		Status:        leave.StatusApproved,
		Reason:        parsed.Reason,
		SourceEmailID: msg.ID,
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.HTTPStatus < http.StatusInternalServerError {
			s.logger.Info("skipping email that failed leave validation",
				zap.String("email_id", msg.ID),
				zap.String("code", appErr.Code),
				zap.String("message", appErr.Message),
			)
		} else {
			s.logger.Error("failed to create leave from email",
				zap.String("email_id", msg.ID),
				zap.Error(err),
			)
		}
		return false
	}

	s.logger.Info("recorded leave from email",
		zap.String("email_id", msg.ID),
		zap.String("employee", emp.Name),
		zap.String("leave_type", parsed.LeaveType),
		zap.String("start_date", parsed.StartDate),
		zap.String("end_date", parsed.EndDate),
	)
	return true
}

func (s *service) syncWindow(ctx context.Context) (time.Time, error) {
	last, err := s.repo.LastSuccessfulSync(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if last != nil {
		return *last, nil
	}
	return time.Now().UTC().Add(-defaultLookback), nil
}

func (s *service) recordFailure(ctx context.Context, cause error) {
	status := "failed: " + cause.Error()
	if len(status) > 255 {
		status = status[:255]
	}
	if err := s.repo.AppendLog(ctx, newLogEntry(0, status)); err != nil {
		s.logger.Error("failed to record sync failure", zap.Error(err))
	}
}

func newLogEntry(processed int, status string) *SyncLogEntry {
	return &SyncLogEntry{
		ID:              uuid.New(),
		LastSync:        time.Now().UTC(),
		EmailsProcessed: processed,
		Status:          status,
	}
}
