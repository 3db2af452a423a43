package timesheeterrors

import (
	"net/http"

	"go-hrflow/internal/shared/apperror"
)

var (
	ErrInvalidTimesheetID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid timesheet id",
		http.StatusBadRequest,
	)
	ErrInvalidWorkDate = apperror.New(
		apperror.CodeInvalidInput,
		"work_date must be an ISO date (YYYY-MM-DD)",
		http.StatusBadRequest,
	)
	ErrInvalidHours = apperror.New(
		apperror.CodeInvalidInput,
		"hours must be greater than 0 and at most 24",
		http.StatusBadRequest,
	)
	ErrTimesheetNotFound = apperror.New(
		apperror.CodeNotFound,
		"timesheet entry not found",
		http.StatusNotFound,
	)
	ErrTimesheetNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"only draft or rejected timesheet entries can be edited",
		http.StatusConflict,
	)
	ErrNotTimesheetOwner = apperror.New(
		apperror.CodeForbidden,
		"timesheet entry belongs to another employee",
		http.StatusForbidden,
	)
)
