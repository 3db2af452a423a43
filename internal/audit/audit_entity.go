package audit

import (
	"time"

	"github.com/google/uuid"
)

// LogEntry is an append-only record of one status-changing action.
// Rows are never updated or deleted.
type LogEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_company_created"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	Action     string    `gorm:"type:varchar(50);not null"`
	EntityType string    `gorm:"type:varchar(30);not null;index:idx_audit_entity"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_entity"`
	OldStatus  string    `gorm:"type:varchar(20)"`
	NewStatus  string    `gorm:"type:varchar(20)"`
	Success    bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"index:idx_audit_company_created"`
}

func (LogEntry) TableName() string {
	return "audit_log_entries"
}

// Action tags written by the approval engine.
const (
	ActionSubmit      = "ITEM_SUBMIT"
	ActionApprove     = "ITEM_APPROVE"
	ActionReject      = "ITEM_REJECT"
	ActionAutoApprove = "ITEM_AUTO_APPROVE"
)
