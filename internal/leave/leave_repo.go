package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) (Repository, error)
	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context, filter LeaveFilter) ([]Leave, error)
	FindByID(ctx context.Context, id string) (*Leave, error)
	Update(ctx context.Context, l *Leave) error
	Delete(ctx context.Context, id string) (int64, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	FindOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (*Leave, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository to tx so every query it issues joins the
// caller's transaction instead of running on the pool.
func (r *repository) WithTx(tx *sql.Tx) (Repository, error) {
	txDB, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return &repository{db: txDB}, nil
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, filter LeaveFilter) ([]Leave, error) {
	db := r.db.WithContext(ctx).Preload("Employee")

	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Year != 0 {
		db = db.Where("EXTRACT(YEAR FROM start_date) = ?", filter.Year)
	}

	var leaves []Leave
	err := db.Order("start_date DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Leave{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

// FindOverlapping returns the first record of the employee whose inclusive
// range intersects [startDate, endDate], or nil when there is none.
func (r *repository) FindOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (*Leave, error) {
	db := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("start_date <= ? AND end_date >= ?", endDate, startDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var l Leave
	err := db.Order("start_date ASC").First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}
