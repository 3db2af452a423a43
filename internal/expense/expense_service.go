package expense

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-hrflow/internal/approval"
	expenseerrors "go-hrflow/internal/expense/errors"
	"go-hrflow/internal/shared/apperror"
	"go-hrflow/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, companyID, employeeID string, req CreateExpenseRequest) (ExpenseResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ExpenseResponse, error)
	ListByEmployee(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]ExpenseResponse, error)
	Update(ctx context.Context, companyID, actorID, id string, req UpdateExpenseRequest) (ExpenseResponse, error)
	Delete(ctx context.Context, companyID, actorID, id string) error

	Submit(ctx context.Context, companyID, actorID, id string) (approval.ItemResponse, error)
	Approve(ctx context.Context, companyID, approverID, id string) (approval.ItemResponse, error)
	Reject(ctx context.Context, companyID, approverID, id string, req approval.RejectItemRequest) (approval.ItemResponse, error)
}

type service struct {
	repo      Repository
	approvals approval.Service
	logger    *zap.Logger
}

func NewService(repo Repository, approvals approval.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("expense.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("expense.service")
	}
	return &service{repo: repo, approvals: approvals, logger: l}
}

func (s *service) Create(ctx context.Context, companyID, employeeID string, req CreateExpenseRequest) (ExpenseResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create expense requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.Int64("amount_cents", req.AmountCents),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidExpenseID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidExpenseID
	}
	expenseDate, currency, err := validatePayload(req.ExpenseDate, req.AmountCents, req.Currency)
	if err != nil {
		return ExpenseResponse{}, err
	}

	claim := &ExpenseClaim{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		EmployeeID:  employeeUUID,
		ExpenseDate: expenseDate,
		AmountCents: req.AmountCents,
		Currency:    currency,
		Category:    req.Category,
		Description: req.Description,
		ReceiptURL:  req.ReceiptURL,
		Status:      approval.StatusDraft,
	}
	if err := s.repo.Create(ctx, claim); err != nil {
		s.logger.Error("create expense persist failed", zap.String("request_id", rid), zap.Error(err))
		return ExpenseResponse{}, err
	}

	s.logger.Info("expense created",
		zap.String("expense_id", claim.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return mapClaimToResponse(*claim), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ExpenseResponse, error) {
	claim, err := s.fetch(ctx, companyID, id)
	if err != nil {
		return ExpenseResponse{}, err
	}
	return mapClaimToResponse(*claim), nil
}

func (s *service) ListByEmployee(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]ExpenseResponse, error) {
	if filter.Status != "" && !approval.IsKnownStatus(approval.Status(filter.Status)) {
		return nil, apperror.InvalidField("status")
	}

	claims, err := s.repo.FindByEmployee(ctx, companyID, employeeID, filter)
	if err != nil {
		return nil, err
	}
	return mapClaimsToResponse(claims), nil
}

func (s *service) Update(ctx context.Context, companyID, actorID, id string, req UpdateExpenseRequest) (ExpenseResponse, error) {
	claim, err := s.fetchOwned(ctx, companyID, actorID, id)
	if err != nil {
		return ExpenseResponse{}, err
	}
	if !claim.Editable() {
		return ExpenseResponse{}, expenseerrors.ErrExpenseNotEditable
	}

	expenseDate, currency, err := validatePayload(req.ExpenseDate, req.AmountCents, req.Currency)
	if err != nil {
		return ExpenseResponse{}, err
	}

	claim.ExpenseDate = expenseDate
	claim.AmountCents = req.AmountCents
	claim.Currency = currency
	claim.Category = req.Category
	claim.Description = req.Description
	claim.ReceiptURL = req.ReceiptURL
	if err := s.repo.Update(ctx, claim); err != nil {
		s.logger.Error("update expense persist failed", zap.String("expense_id", id), zap.Error(err))
		return ExpenseResponse{}, err
	}

	return mapClaimToResponse(*claim), nil
}

func (s *service) Delete(ctx context.Context, companyID, actorID, id string) error {
	claim, err := s.fetchOwned(ctx, companyID, actorID, id)
	if err != nil {
		return err
	}
	if !claim.Editable() {
		return expenseerrors.ErrExpenseNotEditable
	}

	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		s.logger.Error("delete expense failed", zap.String("expense_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("expense deleted", zap.String("expense_id", id))
	return nil
}

func (s *service) Submit(ctx context.Context, companyID, actorID, id string) (approval.ItemResponse, error) {
	return s.approvals.Submit(ctx, companyID, actorID, approval.KindExpense, id)
}

func (s *service) Approve(ctx context.Context, companyID, approverID, id string) (approval.ItemResponse, error) {
	return s.approvals.Approve(ctx, companyID, approverID, approval.KindExpense, id)
}

func (s *service) Reject(ctx context.Context, companyID, approverID, id string, req approval.RejectItemRequest) (approval.ItemResponse, error) {
	return s.approvals.Reject(ctx, companyID, approverID, approval.KindExpense, id, req)
}

func (s *service) fetch(ctx context.Context, companyID, id string) (*ExpenseClaim, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, expenseerrors.ErrInvalidExpenseID
	}

	claim, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expenseerrors.ErrExpenseNotFound
		}
		return nil, err
	}
	return claim, nil
}

func (s *service) fetchOwned(ctx context.Context, companyID, actorID, id string) (*ExpenseClaim, error) {
	claim, err := s.fetch(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if claim.EmployeeID.String() != actorID {
		return nil, expenseerrors.ErrNotExpenseOwner
	}
	return claim, nil
}

func validatePayload(rawDate string, amountCents int64, rawCurrency string) (time.Time, string, error) {
	d, err := time.Parse("2006-01-02", rawDate)
	if err != nil {
		return time.Time{}, "", expenseerrors.ErrInvalidExpenseDate
	}
	if amountCents <= 0 {
		return time.Time{}, "", expenseerrors.ErrInvalidAmount
	}
	currency := strings.ToUpper(rawCurrency)
	if len(currency) != 3 {
		return time.Time{}, "", expenseerrors.ErrInvalidCurrency
	}
	return d, currency, nil
}
