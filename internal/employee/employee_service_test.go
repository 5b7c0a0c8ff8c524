package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"pto-tracker/internal/employee"
	"pto-tracker/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	withTxFn                 func(tx *sql.Tx) (employee.Repository, error)
	createFn                 func(ctx context.Context, e *employee.Employee) error
	findAllFn                func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn               func(ctx context.Context, id string) (*employee.Employee, error)
	findByNameFn             func(ctx context.Context, name string) (*employee.Employee, error)
	findByEmailFn            func(ctx context.Context, email string) (*employee.Employee, error)
	updateFn                 func(ctx context.Context, e *employee.Employee) error
	deleteFn                 func(ctx context.Context, id string) (int64, error)
	deleteLeavesByEmployeeFn func(ctx context.Context, id string) (int64, error)
	yearUsageFn              func(ctx context.Context, year int) (map[string]employee.Usage, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) (employee.Repository, error) {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f, nil
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByName(ctx context.Context, name string) (*employee.Employee, error) {
	if f.findByNameFn != nil {
		return f.findByNameFn(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) (int64, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return 1, nil
}

func (f *fakeEmployeeRepository) DeleteLeavesByEmployee(ctx context.Context, id string) (int64, error) {
	if f.deleteLeavesByEmployeeFn != nil {
		return f.deleteLeavesByEmployeeFn(ctx, id)
	}
	return 0, nil
}

func (f *fakeEmployeeRepository) YearUsage(ctx context.Context, year int) (map[string]employee.Usage, error) {
	if f.yearUsageFn != nil {
		return f.yearUsageFn(ctx, year)
	}
	return map[string]employee.Usage{}, nil
}

type employeeServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service employee.Service
	repo    *fakeEmployeeRepository
}

func setupEmployeeServiceTest(t *testing.T) *employeeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeEmployeeRepository{}
	svc := employee.NewService(db, repo)

	return &employeeServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success with default allotment", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			assert.Equal(t, "Dana", e.Name)
			assert.Equal(t, employee.DefaultPTODays, e.TotalPtoDays)
			return nil
		}

		resp, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{Name: "Dana"})

		assert.NoError(t, err)
		assert.Equal(t, "Dana", resp.Name)
		assert.Equal(t, employee.DefaultPTODays, resp.TotalPtoDays)
		assert.Equal(t, employee.DefaultPTODays, resp.PtoRemaining)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success with explicit allotment", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			assert.Equal(t, 25, e.TotalPtoDays)
			return nil
		}

		resp, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			Name:         "Dana",
			Team:         "Platform",
			TotalPtoDays: intPtr(25),
		})

		assert.NoError(t, err)
		assert.Equal(t, 25, resp.TotalPtoDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative name already taken", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByNameFn = func(ctx context.Context, name string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.New(), Name: name}, nil
		}

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{Name: "Dana"})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeConflict, appErr.Code)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("success merges current year usage", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		id := uuid.New()
		deps.repo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			return []employee.Employee{
				{ID: id, Name: "Dana", TotalPtoDays: 20},
				{ID: uuid.New(), Name: "Kim", TotalPtoDays: 20},
			}, nil
		}
		deps.repo.yearUsageFn = func(ctx context.Context, year int) (map[string]employee.Usage, error) {
			return map[string]employee.Usage{
				id.String(): {PtoUsed: 5, MaternityDays: 0, PaternityDays: 3},
			}, nil
		}

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		if assert.Len(t, resp, 2) {
			assert.Equal(t, 5, resp[0].PtoUsed)
			assert.Equal(t, 15, resp[0].PtoRemaining)
			assert.Equal(t, 3, resp[0].PaternityDays)
			// no usage rows means zero used, full allotment remaining
			assert.Equal(t, 0, resp[1].PtoUsed)
			assert.Equal(t, 20, resp[1].PtoRemaining)
		}
	})

	t.Run("negative usage query failure", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			return []employee.Employee{{ID: uuid.New(), Name: "Dana"}}, nil
		}
		deps.repo.yearUsageFn = func(ctx context.Context, year int) (map[string]employee.Usage, error) {
			return nil, errors.New("db down")
		}

		_, err := deps.service.GetAll(ctx)
		assert.Error(t, err)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success partial update keeps unspecified fields", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, got string) (*employee.Employee, error) {
			assert.Equal(t, id.String(), got)
			return &employee.Employee{
				ID:           id,
				Name:         "Dana",
				Email:        "dana@example.com",
				Team:         "Platform",
				TotalPtoDays: 20,
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, e *employee.Employee) error {
			assert.Equal(t, "Dana", e.Name)
			assert.Equal(t, "Data", e.Team)
			assert.Equal(t, "dana@example.com", e.Email)
			assert.Equal(t, 20, e.TotalPtoDays)
			return nil
		}

		resp, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{
			Team: strPtr("Data"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "Data", resp.Team)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative rename onto existing name", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, got string) (*employee.Employee, error) {
			return &employee.Employee{ID: id, Name: "Dana"}, nil
		}
		deps.repo.findByNameFn = func(ctx context.Context, name string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.New(), Name: name}, nil
		}

		_, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{
			Name: strPtr("Kim"),
		})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeConflict, appErr.Code)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New().String()

	t.Run("success cascades leave records first", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		var order []string
		deps.repo.deleteLeavesByEmployeeFn = func(ctx context.Context, got string) (int64, error) {
			order = append(order, "leaves")
			return 2, nil
		}
		deps.repo.deleteFn = func(ctx context.Context, got string) (int64, error) {
			order = append(order, "employee")
			return 1, nil
		}

		assert.NoError(t, deps.service.Delete(ctx, id))
		assert.Equal(t, []string{"leaves", "employee"}, order)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.deleteFn = func(ctx context.Context, got string) (int64, error) {
			return 0, nil
		}

		err := deps.service.Delete(ctx, id)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeNotFound, appErr.Code)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative invalid id", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		err := deps.service.Delete(ctx, "not-a-uuid")

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})
}
