package analytics

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// EmployeeStats is the roster slice the aggregation runs over.
type EmployeeStats struct {
	ID           string
	Name         string
	Team         string
	TotalPtoDays int
}

// LeaveStats is one Approved leave record reduced to the fields the
// aggregation needs.
type LeaveStats struct {
	EmployeeID string
	LeaveType  string
	StartDate  time.Time
	DaysCount  int
}

type RecentLeave struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	StartDate    time.Time
	EndDate      time.Time
	DaysCount    int
	LeaveType    string
	Status       string
	CreatedAt    time.Time
}

//go:generate mockgen -source=analytics_repo.go -destination=mock/analytics_repo_mock.go -package=mock
type Repository interface {
	ListEmployees(ctx context.Context) ([]EmployeeStats, error)
	ListApprovedLeaves(ctx context.Context, year int) ([]LeaveStats, error)
	ListRecentLeaves(ctx context.Context, year, limit int) ([]RecentLeave, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListEmployees(ctx context.Context) ([]EmployeeStats, error) {
	var rows []EmployeeStats
	err := r.db.WithContext(ctx).Raw(`
SELECT
	id::text AS id,
	name,
	COALESCE(team, '') AS team,
	total_pto_days
FROM employees
ORDER BY name ASC
`).Scan(&rows).Error
	return rows, err
}

func (r *repository) ListApprovedLeaves(ctx context.Context, year int) ([]LeaveStats, error) {
	var rows []LeaveStats
	err := r.db.WithContext(ctx).Raw(`
SELECT
	employee_id::text AS employee_id,
	leave_type,
	start_date,
	days_count
FROM leaves
WHERE status = 'Approved'
	AND EXTRACT(YEAR FROM start_date) = ?
`, year).Scan(&rows).Error
	return rows, err
}

func (r *repository) ListRecentLeaves(ctx context.Context, year, limit int) ([]RecentLeave, error) {
	var rows []RecentLeave
	err := r.db.WithContext(ctx).Raw(`
SELECT
	l.id::text AS id,
	l.employee_id::text AS employee_id,
	e.name AS employee_name,
	l.start_date,
	l.end_date,
	l.days_count,
	l.leave_type,
	l.status,
	l.created_at
FROM leaves l
JOIN employees e ON l.employee_id = e.id
WHERE EXTRACT(YEAR FROM l.start_date) = ?
ORDER BY l.created_at DESC
LIMIT ?
`, year, limit).Scan(&rows).Error
	return rows, err
}
