package expense

import (
	"go-hrflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	expenses := r.Group("/expenses")
	expenses.Use(middleware.AuthMiddleware())
	{
		expenses.POST("", middleware.RBACAuthorize(rbacService, "expense", "create"), handler.Create)
		expenses.GET("", middleware.RBACAuthorize(rbacService, "expense", "read"), handler.ListMine)
		expenses.GET("/:id", middleware.RBACAuthorize(rbacService, "expense", "read"), handler.GetByID)
		expenses.PUT("/:id", middleware.RBACAuthorize(rbacService, "expense", "update"), handler.Update)
		expenses.DELETE("/:id", middleware.RBACAuthorize(rbacService, "expense", "delete"), handler.Delete)

		expenses.POST("/:id/submit", middleware.RBACAuthorize(rbacService, "expense", "submit"), handler.Submit)
		expenses.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "expense", "approve"), handler.Approve)
		expenses.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "expense", "reject"), handler.Reject)
	}
}
