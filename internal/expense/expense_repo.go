package expense

import (
	"context"
	"time"

	"go-hrflow/internal/tenant"

	"gorm.io/gorm"
)

// ListFilter narrows an employee's claim listing. Zero values mean no filter.
type ListFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
}

type Repository interface {
	Create(ctx context.Context, claim *ExpenseClaim) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*ExpenseClaim, error)
	FindByEmployee(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]ExpenseClaim, error)
	Update(ctx context.Context, claim *ExpenseClaim) error
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, claim *ExpenseClaim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*ExpenseClaim, error) {
	var claim ExpenseClaim
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&claim, "id = ?", id).Error
	return &claim, err
}

func (r *repository) FindByEmployee(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]ExpenseClaim, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID)

	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		db = db.Where("expense_date >= ?", filter.From.Format("2006-01-02"))
	}
	if filter.To != nil {
		db = db.Where("expense_date <= ?", filter.To.Format("2006-01-02"))
	}

	var claims []ExpenseClaim
	err := db.Order("expense_date DESC").Find(&claims).Error
	return claims, err
}

// Update only touches the draft payload columns; the state-machine columns
// belong to the approval engine.
func (r *repository) Update(ctx context.Context, claim *ExpenseClaim) error {
	return r.db.WithContext(ctx).
		Model(&ExpenseClaim{}).
		Scopes(tenant.Scope(claim.CompanyID.String())).
		Where("id = ?", claim.ID).
		Updates(map[string]interface{}{
			"expense_date": claim.ExpenseDate,
			"amount_cents": claim.AmountCents,
			"currency":     claim.Currency,
			"category":     claim.Category,
			"description":  claim.Description,
			"receipt_url":  claim.ReceiptURL,
		}).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Delete(&ExpenseClaim{}).Error
}
