package timesheet

import (
	"context"
	"time"

	"go-hrflow/internal/tenant"

	"gorm.io/gorm"
)

// ListFilter narrows an employee's entry listing. Zero values mean no filter.
type ListFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
}

type Repository interface {
	Create(ctx context.Context, entry *TimesheetEntry) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*TimesheetEntry, error)
	FindByEmployee(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]TimesheetEntry, error)
	Update(ctx context.Context, entry *TimesheetEntry) error
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *TimesheetEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*TimesheetEntry, error) {
	var entry TimesheetEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&entry, "id = ?", id).Error
	return &entry, err
}

func (r *repository) FindByEmployee(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]TimesheetEntry, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID)

	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		db = db.Where("work_date >= ?", filter.From.Format("2006-01-02"))
	}
	if filter.To != nil {
		db = db.Where("work_date <= ?", filter.To.Format("2006-01-02"))
	}

	var entries []TimesheetEntry
	err := db.Order("work_date DESC").Find(&entries).Error
	return entries, err
}

// Update only touches the draft payload columns; the state-machine columns
// belong to the approval engine.
func (r *repository) Update(ctx context.Context, entry *TimesheetEntry) error {
	return r.db.WithContext(ctx).
		Model(&TimesheetEntry{}).
		Scopes(tenant.Scope(entry.CompanyID.String())).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"work_date":   entry.WorkDate,
			"hours":       entry.Hours,
			"description": entry.Description,
		}).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Delete(&TimesheetEntry{}).Error
}
