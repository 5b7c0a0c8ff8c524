package leaveerrors

import (
	"net/http"

	"pto-tracker/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidDateRange,
		"end_date cannot be before start_date",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"leave_type must be one of: Planned, Unplanned, Maternity Leave, Paternity Leave",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of: Pending, Approved, Rejected",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave record not found",
		http.StatusNotFound,
	)
)

// Overlap reports a colliding record along with its summary so the caller
// can show which request is in the way.
func Overlap(id, startDate, endDate string) *apperror.AppError {
	return apperror.NewWithDetails(
		apperror.CodeConflict,
		"leave already exists in overlapping period",
		http.StatusConflict,
		map[string]string{
			"id":         id,
			"start_date": startDate,
			"end_date":   endDate,
		},
	)
}
