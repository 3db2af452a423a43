package expenseerrors

import (
	"net/http"

	"go-hrflow/internal/shared/apperror"
)

var (
	ErrInvalidExpenseID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid expense claim id",
		http.StatusBadRequest,
	)
	ErrInvalidExpenseDate = apperror.New(
		apperror.CodeInvalidInput,
		"expense_date must be an ISO date (YYYY-MM-DD)",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount_cents must be greater than 0",
		http.StatusBadRequest,
	)
	ErrInvalidCurrency = apperror.New(
		apperror.CodeInvalidInput,
		"currency must be a 3-letter ISO code",
		http.StatusBadRequest,
	)
	ErrExpenseNotFound = apperror.New(
		apperror.CodeNotFound,
		"expense claim not found",
		http.StatusNotFound,
	)
	ErrExpenseNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"only draft or rejected expense claims can be edited",
		http.StatusConflict,
	)
	ErrNotExpenseOwner = apperror.New(
		apperror.CodeForbidden,
		"expense claim belongs to another employee",
		http.StatusForbidden,
	)
)
