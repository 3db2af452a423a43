package approval_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrflow/internal/approval"
	approvalerrors "go-hrflow/internal/approval/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeApprovalEngine struct {
	autoApproveFn func(ctx context.Context, companyID, adminID, employeeID string) (approval.AutoApproveResult, error)
	pendingFn     func(ctx context.Context, companyID, approverID string, kind approval.Kind) ([]approval.ItemResponse, error)
	historyFn     func(ctx context.Context, companyID string, kind approval.Kind, itemID string) ([]approval.RejectionHistoryResponse, error)
}

func (f *fakeApprovalEngine) Submit(ctx context.Context, companyID, actorID string, kind approval.Kind, itemID string) (approval.ItemResponse, error) {
	return approval.ItemResponse{}, nil
}

func (f *fakeApprovalEngine) Approve(ctx context.Context, companyID, approverID string, kind approval.Kind, itemID string) (approval.ItemResponse, error) {
	return approval.ItemResponse{}, nil
}

func (f *fakeApprovalEngine) Reject(ctx context.Context, companyID, approverID string, kind approval.Kind, itemID string, req approval.RejectItemRequest) (approval.ItemResponse, error) {
	return approval.ItemResponse{}, nil
}

func (f *fakeApprovalEngine) AutoApprove(ctx context.Context, companyID, adminID, employeeID string) (approval.AutoApproveResult, error) {
	if f.autoApproveFn != nil {
		return f.autoApproveFn(ctx, companyID, adminID, employeeID)
	}
	return approval.AutoApproveResult{}, nil
}

func (f *fakeApprovalEngine) PendingForApprover(ctx context.Context, companyID, approverID string, kind approval.Kind) ([]approval.ItemResponse, error) {
	if f.pendingFn != nil {
		return f.pendingFn(ctx, companyID, approverID, kind)
	}
	return nil, nil
}

func (f *fakeApprovalEngine) RejectionHistory(ctx context.Context, companyID string, kind approval.Kind, itemID string) ([]approval.RejectionHistoryResponse, error) {
	if f.historyFn != nil {
		return f.historyFn(ctx, companyID, kind, itemID)
	}
	return nil, nil
}

func TestApprovalHandler_AutoApprove(t *testing.T) {
	t.Run("success returns counts", func(t *testing.T) {
		companyID := uuid.New().String()
		adminID := uuid.New().String()
		employeeID := uuid.New().String()

		svc := &fakeApprovalEngine{
			autoApproveFn: func(ctx context.Context, cid, aid, eid string) (approval.AutoApproveResult, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, adminID, aid)
				assert.Equal(t, employeeID, eid)
				return approval.AutoApproveResult{TimesheetsApproved: 3, ExpensesApproved: 1}, nil
			},
		}

		h := approval.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/employees/"+employeeID+"/auto-approve", nil)
		c.Params = gin.Params{{Key: "id", Value: employeeID}}
		c.Set("company_id", companyID)
		c.Set("employee_id", adminID)

		h.AutoApprove(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var result approval.AutoApproveResult
		assert.NoError(t, json.Unmarshal(env.Data, &result))
		assert.Equal(t, 3, result.TimesheetsApproved)
		assert.Equal(t, 1, result.ExpensesApproved)
	})

	t.Run("negative non-root employee maps to 403", func(t *testing.T) {
		svc := &fakeApprovalEngine{
			autoApproveFn: func(ctx context.Context, cid, aid, eid string) (approval.AutoApproveResult, error) {
				return approval.AutoApproveResult{}, approvalerrors.ErrAutoApproveNotRoot
			},
		}

		h := approval.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/employees/x/auto-approve", nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Set("company_id", uuid.New().String())
		c.Set("employee_id", uuid.New().String())

		h.AutoApprove(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})

	t.Run("negative unknown employee maps to 404", func(t *testing.T) {
		svc := &fakeApprovalEngine{
			autoApproveFn: func(ctx context.Context, cid, aid, eid string) (approval.AutoApproveResult, error) {
				return approval.AutoApproveResult{}, approvalerrors.ErrItemNotFound
			},
		}

		h := approval.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/employees/x/auto-approve", nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Set("company_id", uuid.New().String())
		c.Set("employee_id", uuid.New().String())

		h.AutoApprove(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestApprovalHandler_Pending(t *testing.T) {
	t.Run("success lists pending timesheets for caller", func(t *testing.T) {
		companyID := uuid.New().String()
		approverID := uuid.New().String()

		svc := &fakeApprovalEngine{
			pendingFn: func(ctx context.Context, cid, aid string, kind approval.Kind) ([]approval.ItemResponse, error) {
				assert.Equal(t, approverID, aid)
				assert.Equal(t, approval.KindTimesheet, kind)
				return []approval.ItemResponse{
					{ID: uuid.New().String(), Kind: string(kind), Status: string(approval.StatusSubmitted)},
				}, nil
			},
		}

		h := approval.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/manager/timesheets/pending", nil)
		c.Set("company_id", companyID)
		c.Set("employee_id", approverID)

		h.PendingTimesheets(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var items []approval.ItemResponse
		assert.NoError(t, json.Unmarshal(env.Data, &items))
		assert.Len(t, items, 1)
		assert.Equal(t, string(approval.StatusSubmitted), items[0].Status)
	})

	t.Run("success empty scope is an empty list", func(t *testing.T) {
		svc := &fakeApprovalEngine{
			pendingFn: func(ctx context.Context, cid, aid string, kind approval.Kind) ([]approval.ItemResponse, error) {
				return []approval.ItemResponse{}, nil
			},
		}

		h := approval.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/manager/expenses/pending", nil)
		c.Set("company_id", uuid.New().String())
		c.Set("employee_id", uuid.New().String())

		h.PendingExpenses(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.Equal(t, "[]", string(env.Data))
	})
}

func TestApprovalHandler_Rejections(t *testing.T) {
	t.Run("success lists history", func(t *testing.T) {
		itemID := uuid.New().String()

		svc := &fakeApprovalEngine{
			historyFn: func(ctx context.Context, cid string, kind approval.Kind, iid string) ([]approval.RejectionHistoryResponse, error) {
				assert.Equal(t, approval.KindExpense, kind)
				assert.Equal(t, itemID, iid)
				return []approval.RejectionHistoryResponse{
					{ID: uuid.New().String(), ItemID: iid, Reason: "duplicate claim"},
				}, nil
			},
		}

		h := approval.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/expenses/"+itemID+"/rejections", nil)
		c.Params = gin.Params{{Key: "id", Value: itemID}}
		c.Set("company_id", uuid.New().String())

		h.ExpenseRejections(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var recs []approval.RejectionHistoryResponse
		assert.NoError(t, json.Unmarshal(env.Data, &recs))
		assert.Len(t, recs, 1)
		assert.Equal(t, "duplicate claim", recs[0].Reason)
	})
}
