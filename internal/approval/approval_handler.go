package approval

import (
	"net/http"

	"go-hrflow/internal/shared/apperror"
	"go-hrflow/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("approval.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.handler")
	}
	return &Handler{service: service, logger: l}
}

// PendingTimesheets lists the submitted timesheets the caller may decide on.
func (h *Handler) PendingTimesheets(c *gin.Context) {
	h.pending(c, KindTimesheet)
}

// PendingExpenses lists the submitted expense claims the caller may decide on.
func (h *Handler) PendingExpenses(c *gin.Context) {
	h.pending(c, KindExpense)
}

func (h *Handler) pending(c *gin.Context, kind Kind) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	approverID := c.GetString("employee_id")

	items, err := h.service.PendingForApprover(ctx, companyID, approverID, kind)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("pending list request failed",
			zap.String("kind", string(kind)),
			zap.String("approver_id", approverID),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, items, nil)
}

// AutoApprove approves all submitted items of the root-level employee :id.
func (h *Handler) AutoApprove(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	adminID := c.GetString("employee_id")
	employeeID := c.Param("id")

	result, err := h.service.AutoApprove(ctx, companyID, adminID, employeeID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("auto-approve request failed",
			zap.String("employee_id", employeeID),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}

// TimesheetRejections lists the rejection episodes of one timesheet entry.
func (h *Handler) TimesheetRejections(c *gin.Context) {
	h.rejections(c, KindTimesheet)
}

// ExpenseRejections lists the rejection episodes of one expense claim.
func (h *Handler) ExpenseRejections(c *gin.Context) {
	h.rejections(c, KindExpense)
}

func (h *Handler) rejections(c *gin.Context, kind Kind) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	itemID := c.Param("id")

	recs, err := h.service.RejectionHistory(ctx, companyID, kind, itemID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("rejection history request failed",
			zap.String("kind", string(kind)),
			zap.String("item_id", itemID),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, recs, nil)
}
