package approval

import (
	"time"

	"github.com/google/uuid"
)

// Kind selects which approvable collection an operation targets. The two
// kinds share one state machine and differ only in their payload columns,
// which this engine carries through untouched.
type Kind string

const (
	KindTimesheet Kind = "TIMESHEET"
	KindExpense   Kind = "EXPENSE"
)

func (k Kind) Valid() bool {
	return k == KindTimesheet || k == KindExpense
}

// Table returns the backing table for a kind.
func (k Kind) Table() string {
	if k == KindExpense {
		return "expense_claims"
	}
	return "timesheet_entries"
}

// Item is the engine's view of one approvable record: the shared identity
// and state-machine columns, nothing kind-specific.
type Item struct {
	ID                uuid.UUID  `gorm:"column:id"`
	CompanyID         uuid.UUID  `gorm:"column:company_id"`
	EmployeeID        uuid.UUID  `gorm:"column:employee_id"`
	Status            Status     `gorm:"column:status"`
	SubmittedAt       *time.Time `gorm:"column:submitted_at"`
	ApproverID        *uuid.UUID `gorm:"column:approver_id"`
	DecidedAt         *time.Time `gorm:"column:decided_at"`
	RejectionReason   *string    `gorm:"column:rejection_reason"`
	RejectionCategory *string    `gorm:"column:rejection_category"`
}
