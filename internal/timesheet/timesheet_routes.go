package timesheet

import (
	"go-hrflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	timesheets := r.Group("/timesheets")
	timesheets.Use(middleware.AuthMiddleware())
	{
		timesheets.POST("", middleware.RBACAuthorize(rbacService, "timesheet", "create"), handler.Create)
		timesheets.GET("", middleware.RBACAuthorize(rbacService, "timesheet", "read"), handler.ListMine)
		timesheets.GET("/:id", middleware.RBACAuthorize(rbacService, "timesheet", "read"), handler.GetByID)
		timesheets.PUT("/:id", middleware.RBACAuthorize(rbacService, "timesheet", "update"), handler.Update)
		timesheets.DELETE("/:id", middleware.RBACAuthorize(rbacService, "timesheet", "delete"), handler.Delete)

		timesheets.POST("/:id/submit", middleware.RBACAuthorize(rbacService, "timesheet", "submit"), handler.Submit)
		timesheets.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "timesheet", "approve"), handler.Approve)
		timesheets.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "timesheet", "reject"), handler.Reject)
	}
}
