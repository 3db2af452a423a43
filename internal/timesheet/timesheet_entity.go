package timesheet

import (
	"time"

	"go-hrflow/internal/approval"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimesheetEntry is one day's worked hours for one employee. The approval
// columns (status through rejection_category) are owned by the approval
// engine; this package only ever writes them at creation time.
type TimesheetEntry struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_timesheets_employee_status"`
	WorkDate          time.Time       `gorm:"type:date;not null"`
	Hours             float64         `gorm:"type:numeric(4,2);not null"`
	Description       string          `gorm:"type:text"`
	Status            approval.Status `gorm:"type:varchar(20);not null;index:idx_timesheets_employee_status"`
	SubmittedAt       *time.Time
	ApproverID        *uuid.UUID `gorm:"type:uuid"`
	DecidedAt         *time.Time
	RejectionReason   *string `gorm:"type:text"`
	RejectionCategory *string `gorm:"type:varchar(50)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (TimesheetEntry) TableName() string {
	return "timesheet_entries"
}

// Editable reports whether the draft fields may still be changed.
func (t *TimesheetEntry) Editable() bool {
	return t.Status == approval.StatusDraft || t.Status == approval.StatusRejected
}
