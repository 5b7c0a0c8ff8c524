package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"pto-tracker/internal/events"
	leaveerrors "pto-tracker/internal/leave/errors"
	"pto-tracker/internal/messaging/kafka"
	"pto-tracker/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	TypePlanned   = "Planned"
	TypeUnplanned = "Unplanned"
	TypeMaternity = "Maternity Leave"
	TypePaternity = "Paternity Leave"

	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

func ValidLeaveType(t string) bool {
	switch t {
	case TypePlanned, TypeUnplanned, TypeMaternity, TypePaternity:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, filter LeaveFilter) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.String("leave_type", req.LeaveType),
	)

	employeeUUID, startDate, endDate, status, err := validateLeaveRequest(
		req.EmployeeID, req.StartDate, req.EndDate, req.LeaveType, req.Status,
	)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx, err := s.repo.WithTx(tx)
	if err != nil {
		s.logger.Error("create leave bind tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("create leave employee check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !exists {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	colliding, err := qtx.FindOverlapping(ctx, req.EmployeeID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if colliding != nil {
		s.logger.Warn("create leave overlap detected",
			zap.String("employee_id", req.EmployeeID),
			zap.String("colliding_id", colliding.ID.String()),
		)
		return LeaveResponse{}, leaveerrors.Overlap(
			colliding.ID.String(),
			colliding.StartDate.Format("2006-01-02"),
			colliding.EndDate.Format("2006-01-02"),
		)
	}

	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		StartDate:  startDate,
		EndDate:    endDate,
		DaysCount:  BusinessDays(startDate, endDate),
		LeaveType:  req.LeaveType,
		Status:     status,
		Reason:     req.Reason,
	}
	if req.SourceEmailID != "" {
		v := req.SourceEmailID
		l.SourceEmailID = &v
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if s.outbox != nil {
		if err := s.queueRecordedEvent(ctx, tx, rid, l); err != nil {
			s.logger.Error("create leave outbox persist failed",
				zap.String("leave_id", l.ID.String()),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("days_count", l.DaysCount),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, filter LeaveFilter) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	employeeUUID, startDate, endDate, status, err := validateLeaveRequest(
		req.EmployeeID, req.StartDate, req.EndDate, req.LeaveType, req.Status,
	)
	if err != nil {
		s.logger.Warn("update leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx, err := s.repo.WithTx(tx)
	if err != nil {
		s.logger.Error("update leave bind tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !exists {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	// The record itself is not a collision candidate during edit
	colliding, err := qtx.FindOverlapping(ctx, req.EmployeeID, startDate, endDate, &id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if colliding != nil {
		return LeaveResponse{}, leaveerrors.Overlap(
			colliding.ID.String(),
			colliding.StartDate.Format("2006-01-02"),
			colliding.EndDate.Format("2006-01-02"),
		)
	}

	// Date or type changes force a days_count recomputation
	l.EmployeeID = employeeUUID
	l.StartDate = startDate
	l.EndDate = endDate
	l.DaysCount = BusinessDays(startDate, endDate)
	l.LeaveType = req.LeaveType
	l.Status = status
	l.Reason = req.Reason

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	s.logger.Info("update leave success",
		zap.String("leave_id", id),
		zap.Int("days_count", l.DaysCount),
	)

	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx, err := s.repo.WithTx(tx)
	if err != nil {
		return err
	}

	affected, err := qtx.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return leaveerrors.ErrLeaveNotFound
	}
	return tx.Commit()
}

func (s *service) queueRecordedEvent(ctx context.Context, tx *sql.Tx, rid string, l *Leave) error {
	source := events.LeaveSourceAPI
	if l.SourceEmailID != nil {
		source = events.LeaveSourceEmail
	}

	event := events.LeaveRecordedEvent{
		EventType:  "leave_recorded",
		RequestID:  rid,
		LeaveID:    l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		DaysCount:  l.DaysCount,
		Source:     source,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     rid,
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveRecordedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func validateLeaveRequest(employeeID, startDateRaw, endDateRaw, leaveType, status string) (uuid.UUID, time.Time, time.Time, string, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, "", leaveerrors.ErrInvalidEmployeeID
	}
	startDate, err := parseDate(startDateRaw)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, "", err
	}
	endDate, err := parseDate(endDateRaw)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, "", err
	}
	if endDate.Before(startDate) {
		return uuid.Nil, time.Time{}, time.Time{}, "", leaveerrors.ErrInvalidDateRange
	}
	if !ValidLeaveType(leaveType) {
		return uuid.Nil, time.Time{}, time.Time{}, "", leaveerrors.ErrInvalidLeaveType
	}
	if status == "" {
		status = StatusApproved
	}
	if !ValidStatus(status) {
		return uuid.Nil, time.Time{}, time.Time{}, "", leaveerrors.ErrInvalidStatus
	}
	return employeeUUID, startDate, endDate, status, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		DaysCount:  l.DaysCount,
		Status:     l.Status,
		Reason:     l.Reason,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.Name
	}
	if l.SourceEmailID != nil {
		resp.SourceEmailID = *l.SourceEmailID
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
