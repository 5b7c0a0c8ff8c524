package employee_test

import (
	"context"
	"testing"

	"pto-tracker/internal/employee"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestEmployeeRepository_WithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("delete cascade joins the transaction connection", func(t *testing.T) {
		poolDB, poolMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer poolDB.Close()

		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{})
		assert.NoError(t, err)

		txDB, txMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer txDB.Close()

		employeeID := uuid.New().String()

		txMock.ExpectBegin()
		txMock.ExpectExec(`DELETE FROM leaves WHERE employee_id`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		txMock.ExpectExec(`DELETE FROM "employees"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		txMock.ExpectCommit()

		tx, err := txDB.Begin()
		assert.NoError(t, err)

		repo, err := employee.NewRepository(gormDB).WithTx(tx)
		assert.NoError(t, err)

		removed, err := repo.DeleteLeavesByEmployee(ctx, employeeID)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), removed)

		affected, err := repo.Delete(ctx, employeeID)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		assert.NoError(t, tx.Commit())

		assert.NoError(t, txMock.ExpectationsWereMet())
		assert.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("cascade rolls back as one unit", func(t *testing.T) {
		poolDB, poolMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer poolDB.Close()

		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{})
		assert.NoError(t, err)

		txDB, txMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer txDB.Close()

		txMock.ExpectBegin()
		txMock.ExpectExec(`DELETE FROM leaves WHERE employee_id`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		txMock.ExpectRollback()

		tx, err := txDB.Begin()
		assert.NoError(t, err)

		repo, err := employee.NewRepository(gormDB).WithTx(tx)
		assert.NoError(t, err)

		removed, err := repo.DeleteLeavesByEmployee(ctx, uuid.New().String())
		assert.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		assert.NoError(t, tx.Rollback())

		assert.NoError(t, txMock.ExpectationsWereMet())
		assert.NoError(t, poolMock.ExpectationsWereMet())
	})
}
