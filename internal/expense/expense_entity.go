package expense

import (
	"time"

	"go-hrflow/internal/approval"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpenseClaim is one reimbursable expense. Amounts are integer cents to
// keep arithmetic exact. The approval columns are owned by the approval
// engine; this package only writes them at creation time.
type ExpenseClaim struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_expenses_employee_status"`
	ExpenseDate       time.Time       `gorm:"type:date;not null"`
	AmountCents       int64           `gorm:"not null"`
	Currency          string          `gorm:"type:char(3);not null"`
	Category          string          `gorm:"type:varchar(50)"`
	Description       string          `gorm:"type:text"`
	ReceiptURL        string          `gorm:"type:text"`
	Status            approval.Status `gorm:"type:varchar(20);not null;index:idx_expenses_employee_status"`
	SubmittedAt       *time.Time
	ApproverID        *uuid.UUID `gorm:"type:uuid"`
	DecidedAt         *time.Time
	RejectionReason   *string `gorm:"type:text"`
	RejectionCategory *string `gorm:"type:varchar(50)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (ExpenseClaim) TableName() string {
	return "expense_claims"
}

// Editable reports whether the draft fields may still be changed.
func (e *ExpenseClaim) Editable() bool {
	return e.Status == approval.StatusDraft || e.Status == approval.StatusRejected
}
