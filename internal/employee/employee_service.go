package employee

import (
	"context"
	"database/sql"
	"errors"
	"time"

	employeeerrors "pto-tracker/internal/employee/errors"
	"pto-tracker/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultPTODays = 20

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("name", req.Name),
		zap.String("team", req.Team),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx, err := s.repo.WithTx(tx)
	if err != nil {
		s.logger.Error("create employee bind tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if _, err := qtx.FindByName(ctx, req.Name); err == nil {
		s.logger.Warn("create employee name taken", zap.String("name", req.Name))
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("create employee name lookup failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	totalPtoDays := DefaultPTODays
	if req.TotalPtoDays != nil {
		totalPtoDays = *req.TotalPtoDays
	}

	e := &Employee{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Team:         req.Team,
		TotalPtoDays: totalPtoDays,
	}

	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.logger.Info("create employee success",
		zap.String("employee_id", e.ID.String()),
		zap.String("name", e.Name),
	)

	return mapToResponse(*e, Usage{}), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	usage, err := s.repo.YearUsage(ctx, time.Now().UTC().Year())
	if err != nil {
		return nil, err
	}

	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e, usage[e.ID.String()])
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	usage, err := s.repo.YearUsage(ctx, time.Now().UTC().Year())
	if err != nil {
		return EmployeeResponse{}, err
	}

	return mapToResponse(*e, usage[e.ID.String()]), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx, err := s.repo.WithTx(tx)
	if err != nil {
		s.logger.Error("update employee bind tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	// Partial update: unspecified fields are retained
	if req.Name != nil && *req.Name != e.Name {
		if existing, err := qtx.FindByName(ctx, *req.Name); err == nil && existing.ID != e.ID {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNameTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, err
		}
		e.Name = *req.Name
	}
	if req.Email != nil {
		e.Email = *req.Email
	}
	if req.Team != nil {
		e.Team = *req.Team
	}
	if req.TotalPtoDays != nil {
		e.TotalPtoDays = *req.TotalPtoDays
	}

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("update employee persist failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.logger.Info("update employee success", zap.String("employee_id", id))

	usage, err := s.repo.YearUsage(ctx, time.Now().UTC().Year())
	if err != nil {
		return EmployeeResponse{}, err
	}

	return mapToResponse(*e, usage[e.ID.String()]), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx, err := s.repo.WithTx(tx)
	if err != nil {
		s.logger.Error("delete employee bind tx failed", zap.Error(err))
		return err
	}

	// Leave records are owned by the employee and cannot outlive it
	removed, err := qtx.DeleteLeavesByEmployee(ctx, id)
	if err != nil {
		s.logger.Error("delete employee cascade failed", zap.Error(err))
		return err
	}

	affected, err := qtx.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete employee persist failed", zap.Error(err))
		return err
	}
	if affected == 0 {
		return employeeerrors.ErrEmployeeNotFound
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}
	s.logger.Info("delete employee success",
		zap.String("employee_id", id),
		zap.Int64("leaves_removed", removed),
	)

	return nil
}

func mapToResponse(e Employee, usage Usage) EmployeeResponse {
	return EmployeeResponse{
		ID:            e.ID.String(),
		Name:          e.Name,
		Email:         e.Email,
		Team:          e.Team,
		TotalPtoDays:  e.TotalPtoDays,
		PtoUsed:       usage.PtoUsed,
		PtoRemaining:  e.TotalPtoDays - usage.PtoUsed,
		MaternityDays: usage.MaternityDays,
		PaternityDays: usage.PaternityDays,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
}
