package audit

import (
	"net/http"
	"strconv"
	"time"

	"go-hrflow/internal/shared/apperror"
	"go-hrflow/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EntryResponse struct {
	ID         string `json:"id"`
	CompanyID  string `json:"company_id"`
	ActorID    string `json:"actor_id"`
	Action     string `json:"action"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	OldStatus  string `json:"old_status,omitempty"`
	NewStatus  string `json:"new_status,omitempty"`
	Success    bool   `json:"success"`
	CreatedAt  string `json:"created_at"`
}

type Handler struct {
	repo   Repository
	logger *zap.Logger
}

func NewHandler(repo Repository, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("audit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.handler")
	}
	return &Handler{repo: repo, logger: l}
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := h.repo.FindAllByCompany(ctx, companyID, limit)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, mapToListResponse(entries), nil)
}

func (h *Handler) GetByEntity(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	entityType := c.Param("entity_type")
	entityID := c.Param("entity_id")

	entries, err := h.repo.FindByEntity(ctx, companyID, entityType, entityID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, mapToListResponse(entries), nil)
}

func mapToListResponse(entries []LogEntry) []EntryResponse {
	resp := make([]EntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = EntryResponse{
			ID:         e.ID.String(),
			CompanyID:  e.CompanyID.String(),
			ActorID:    e.ActorID.String(),
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID.String(),
			OldStatus:  e.OldStatus,
			NewStatus:  e.NewStatus,
			Success:    e.Success,
			CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp
}
