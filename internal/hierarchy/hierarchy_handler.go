package hierarchy

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
	l := zap.L().Named("hierarchy.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("hierarchy.handler")
	}
	return &Handler{service: service, logger: l}
}

// TeamRoster returns every employee transitively managed by :id.
func (h *Handler) TeamRoster(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	employeeID := c.Param("id")

	roster, err := h.service.TeamRoster(ctx, companyID, employeeID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("team roster request failed",
			zap.String("employee_id", employeeID),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, roster, nil)
}
