package app

import (
	"database/sql"
	"path/filepath"

	"go-hrflow/internal/approval"
	"go-hrflow/internal/audit"
	"go-hrflow/internal/auth"
	"go-hrflow/internal/employee"
	"go-hrflow/internal/expense"
	"go-hrflow/internal/hierarchy"
	"go-hrflow/internal/messaging/kafka"
	"go-hrflow/internal/rbac"
	"go-hrflow/internal/rbac/infra"
	"go-hrflow/internal/timesheet"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	auditRepo := audit.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	expenseRepo := expense.NewRepository(gormDB)
	itemRepo := approval.NewItemRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	rejectionRepo := approval.NewRejectionRepository(gormDB)
	timesheetRepo := timesheet.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	hierarchyService := hierarchy.NewService(employeeRepo, rdb)
	approvalService := approval.NewService(gormDB, itemRepo, rejectionRepo, employeeRepo, hierarchyService, auditRepo, outboxRepo)
	authService := auth.NewService(authRepo, employeeRepo)
	employeeService := employee.NewService(db, employeeRepo)
	expenseService := expense.NewService(expenseRepo, approvalService)
	timesheetService := timesheet.NewService(timesheetRepo, approvalService)

	// --- Handlers ---
	approvalHandler := approval.NewHandler(approvalService)
	auditHandler := audit.NewHandler(auditRepo)
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	expenseHandler := expense.NewHandler(expenseService)
	hierarchyHandler := hierarchy.NewHandler(hierarchyService)
	timesheetHandler := timesheet.NewHandler(timesheetService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		approval.RegisterRoutes(api, approvalHandler, rbacService, rdb)
		audit.RegisterRoutes(api, auditHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		expense.RegisterRoutes(api, expenseHandler, rbacService)
		hierarchy.RegisterRoutes(api, hierarchyHandler, rbacService)
		timesheet.RegisterRoutes(api, timesheetHandler, rbacService)
	}

	return nil
}
