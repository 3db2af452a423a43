package approval

import (
	"go-hrflow/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	manager := r.Group("/manager")
	manager.Use(middleware.AuthMiddleware())
	{
		manager.GET("/timesheets/pending", middleware.RBACAuthorize(rbacService, "approval", "read"), handler.PendingTimesheets)
		manager.GET("/expenses/pending", middleware.RBACAuthorize(rbacService, "approval", "read"), handler.PendingExpenses)
	}

	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.POST("/:id/auto-approve",
			middleware.RBACAuthorize(rbacService, "approval", "auto_approve"),
			middleware.Idempotency(rdb),
			handler.AutoApprove,
		)
	}

	timesheets := r.Group("/timesheets")
	timesheets.Use(middleware.AuthMiddleware())
	{
		timesheets.GET("/:id/rejections", middleware.RBACAuthorize(rbacService, "approval", "read"), handler.TimesheetRejections)
	}

	expenses := r.Group("/expenses")
	expenses.Use(middleware.AuthMiddleware())
	{
		expenses.GET("/:id/rejections", middleware.RBACAuthorize(rbacService, "approval", "read"), handler.ExpenseRejections)
	}
}
