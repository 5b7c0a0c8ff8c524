package employee

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Usage is the per-employee Approved-day rollup for one calendar year.
type Usage struct {
	PtoUsed       int
	MaternityDays int
	PaternityDays int
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) (Repository, error)
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByName(ctx context.Context, name string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id string) (int64, error)
	DeleteLeavesByEmployee(ctx context.Context, id string) (int64, error)
	YearUsage(ctx context.Context, year int) (map[string]Usage, error)
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// DeleteLeavesByEmployee removes the dependent leave records; callers run it
// in the same transaction as the employee delete so no orphans survive.
func (r *repository) DeleteLeavesByEmployee(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`DELETE FROM leaves WHERE employee_id = ?`, id)
	return res.RowsAffected, res.Error
}

func (r *repository) YearUsage(ctx context.Context, year int) (map[string]Usage, error) {
	type usageRow struct {
		EmployeeID    string
		PtoUsed       int
		MaternityDays int
		PaternityDays int
	}

	var rows []usageRow
	err := r.db.WithContext(ctx).Raw(`
SELECT
	employee_id::text AS employee_id,
	COALESCE(SUM(CASE WHEN leave_type IN ('Planned', 'Unplanned') THEN days_count ELSE 0 END), 0) AS pto_used,
	COALESCE(SUM(CASE WHEN leave_type = 'Maternity Leave' THEN days_count ELSE 0 END), 0) AS maternity_days,
	COALESCE(SUM(CASE WHEN leave_type = 'Paternity Leave' THEN days_count ELSE 0 END), 0) AS paternity_days
FROM leaves
WHERE status = 'Approved'
	AND EXTRACT(YEAR FROM start_date) = ?
GROUP BY employee_id
`, year).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	usage := make(map[string]Usage, len(rows))
	for _, row := range rows {
		usage[row.EmployeeID] = Usage{
			PtoUsed:       row.PtoUsed,
			MaternityDays: row.MaternityDays,
			PaternityDays: row.PaternityDays,
		}
	}
	return usage, nil
}
