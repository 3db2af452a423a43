package approvalerrors

import (
	"net/http"

	"go-hrflow/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidItemID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid item id",
		http.StatusBadRequest,
	)
	ErrInvalidItemKind = apperror.New(
		apperror.CodeInvalidInput,
		"invalid item kind",
		http.StatusBadRequest,
	)
	ErrItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"approvable item not found",
		http.StatusNotFound,
	)
	ErrNotItemOwner = apperror.New(
		apperror.CodeForbidden,
		"only the item owner may submit it",
		http.StatusForbidden,
	)
	ErrNotInApprovalScope = apperror.New(
		apperror.CodeForbidden,
		"the item owner is outside your approval scope",
		http.StatusForbidden,
	)
	ErrIllegalTransition = apperror.New(
		apperror.CodeInvalidState,
		"the item's current status does not permit this transition",
		http.StatusConflict,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection_reason is required",
		http.StatusBadRequest,
	)
	ErrAutoApproveNotRoot = apperror.New(
		apperror.CodeForbidden,
		"auto-approve is only permitted for root-level employees",
		http.StatusForbidden,
	)
)
