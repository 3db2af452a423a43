package expense_test

import (
	"context"
	"testing"
	"time"

	"go-hrflow/internal/approval"
	"go-hrflow/internal/expense"
	expenseerrors "go-hrflow/internal/expense/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeExpenseRepository struct {
	createFn             func(ctx context.Context, claim *expense.ExpenseClaim) error
	findByIDAndCompanyFn func(ctx context.Context, companyID, id string) (*expense.ExpenseClaim, error)
	findByEmployeeFn     func(ctx context.Context, companyID, employeeID string) ([]expense.ExpenseClaim, error)
	updateFn             func(ctx context.Context, claim *expense.ExpenseClaim) error
	deleteFn             func(ctx context.Context, companyID, id string) error
}

func (f *fakeExpenseRepository) Create(ctx context.Context, claim *expense.ExpenseClaim) error {
	if f.createFn != nil {
		return f.createFn(ctx, claim)
	}
	return nil
}

func (f *fakeExpenseRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*expense.ExpenseClaim, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeExpenseRepository) FindByEmployee(ctx context.Context, companyID, employeeID string, filter expense.ListFilter) ([]expense.ExpenseClaim, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, companyID, employeeID)
	}
	return nil, nil
}

func (f *fakeExpenseRepository) Update(ctx context.Context, claim *expense.ExpenseClaim) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, claim)
	}
	return nil
}

func (f *fakeExpenseRepository) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

type stubApprovalService struct {
	rejectFn func(ctx context.Context, companyID, approverID string, kind approval.Kind, itemID string, req approval.RejectItemRequest) (approval.ItemResponse, error)
}

func (s *stubApprovalService) Submit(ctx context.Context, companyID, actorID string, kind approval.Kind, itemID string) (approval.ItemResponse, error) {
	return approval.ItemResponse{Status: string(approval.StatusSubmitted)}, nil
}

func (s *stubApprovalService) Approve(ctx context.Context, companyID, approverID string, kind approval.Kind, itemID string) (approval.ItemResponse, error) {
	return approval.ItemResponse{Status: string(approval.StatusApproved)}, nil
}

func (s *stubApprovalService) Reject(ctx context.Context, companyID, approverID string, kind approval.Kind, itemID string, req approval.RejectItemRequest) (approval.ItemResponse, error) {
	if s.rejectFn != nil {
		return s.rejectFn(ctx, companyID, approverID, kind, itemID, req)
	}
	return approval.ItemResponse{Status: string(approval.StatusRejected)}, nil
}

func (s *stubApprovalService) AutoApprove(ctx context.Context, companyID, adminID, employeeID string) (approval.AutoApproveResult, error) {
	return approval.AutoApproveResult{}, nil
}

func (s *stubApprovalService) PendingForApprover(ctx context.Context, companyID, approverID string, kind approval.Kind) ([]approval.ItemResponse, error) {
	return nil, nil
}

func (s *stubApprovalService) RejectionHistory(ctx context.Context, companyID string, kind approval.Kind, itemID string) ([]approval.RejectionHistoryResponse, error) {
	return nil, nil
}

func claimFor(companyID, employeeID string, status approval.Status) *expense.ExpenseClaim {
	return &expense.ExpenseClaim{
		ID:          uuid.New(),
		CompanyID:   uuid.MustParse(companyID),
		EmployeeID:  uuid.MustParse(employeeID),
		ExpenseDate: time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC),
		AmountCents: 12500,
		Currency:    "EUR",
		Status:      status,
	}
}

func TestExpenseService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success uppercases currency", func(t *testing.T) {
		repo := &fakeExpenseRepository{}
		repo.createFn = func(ctx context.Context, claim *expense.ExpenseClaim) error {
			assert.Equal(t, "EUR", claim.Currency)
			assert.Equal(t, int64(4200), claim.AmountCents)
			assert.Equal(t, approval.StatusDraft, claim.Status)
			return nil
		}

		svc := expense.NewService(repo, &stubApprovalService{})
		resp, err := svc.Create(ctx, companyID, employeeID, expense.CreateExpenseRequest{
			ExpenseDate: "2026-07-20",
			AmountCents: 4200,
			Currency:    "eur",
			Category:    "TRAVEL",
		})

		assert.NoError(t, err)
		assert.Equal(t, "EUR", resp.Currency)
		assert.Equal(t, string(approval.StatusDraft), resp.Status)
	})

	t.Run("negative zero amount", func(t *testing.T) {
		svc := expense.NewService(&fakeExpenseRepository{}, &stubApprovalService{})

		_, err := svc.Create(ctx, companyID, employeeID, expense.CreateExpenseRequest{
			ExpenseDate: "2026-07-20",
			AmountCents: 0,
			Currency:    "EUR",
		})

		assert.ErrorIs(t, err, expenseerrors.ErrInvalidAmount)
	})

	t.Run("negative malformed currency", func(t *testing.T) {
		svc := expense.NewService(&fakeExpenseRepository{}, &stubApprovalService{})

		_, err := svc.Create(ctx, companyID, employeeID, expense.CreateExpenseRequest{
			ExpenseDate: "2026-07-20",
			AmountCents: 100,
			Currency:    "EURO",
		})

		assert.ErrorIs(t, err, expenseerrors.ErrInvalidCurrency)
	})
}

func TestExpenseService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("negative approved claim is frozen", func(t *testing.T) {
		repo := &fakeExpenseRepository{}
		claim := claimFor(companyID, employeeID, approval.StatusApproved)
		repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*expense.ExpenseClaim, error) {
			return claim, nil
		}

		svc := expense.NewService(repo, &stubApprovalService{})
		_, err := svc.Update(ctx, companyID, employeeID, claim.ID.String(), expense.UpdateExpenseRequest{
			ExpenseDate: "2026-07-21",
			AmountCents: 9900,
			Currency:    "EUR",
		})

		assert.ErrorIs(t, err, expenseerrors.ErrExpenseNotEditable)
	})

	t.Run("negative foreign claim", func(t *testing.T) {
		repo := &fakeExpenseRepository{}
		claim := claimFor(companyID, uuid.New().String(), approval.StatusDraft)
		repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*expense.ExpenseClaim, error) {
			return claim, nil
		}

		svc := expense.NewService(repo, &stubApprovalService{})
		_, err := svc.Update(ctx, companyID, employeeID, claim.ID.String(), expense.UpdateExpenseRequest{
			ExpenseDate: "2026-07-21",
			AmountCents: 9900,
			Currency:    "EUR",
		})

		assert.ErrorIs(t, err, expenseerrors.ErrNotExpenseOwner)
	})
}

func TestExpenseService_Reject(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	approverID := uuid.New().String()
	claimID := uuid.New().String()

	t.Run("delegates with expense kind", func(t *testing.T) {
		approvals := &stubApprovalService{}
		approvals.rejectFn = func(ctx context.Context, cid, aid string, kind approval.Kind, itemID string, req approval.RejectItemRequest) (approval.ItemResponse, error) {
			assert.Equal(t, approval.KindExpense, kind)
			assert.Equal(t, claimID, itemID)
			assert.Equal(t, "no receipt", req.RejectionReason)
			return approval.ItemResponse{ID: itemID, Status: string(approval.StatusRejected)}, nil
		}

		svc := expense.NewService(&fakeExpenseRepository{}, approvals)
		resp, err := svc.Reject(ctx, companyID, approverID, claimID, approval.RejectItemRequest{RejectionReason: "no receipt"})

		assert.NoError(t, err)
		assert.Equal(t, string(approval.StatusRejected), resp.Status)
	})
}
