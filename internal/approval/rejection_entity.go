package approval

import (
	"time"

	"github.com/google/uuid"
)

// RejectionHistory is one rejection episode of an approvable item. Records
// are append-only: a row is created per rejection, and the only permitted
// mutation is stamping ResolvedAt once, when a later resubmission gets
// approved. A rejection after that opens a fresh record.
type RejectionHistory struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_rejections_item"`
	ItemKind   Kind      `gorm:"type:varchar(20);not null;index:idx_rejections_item"`
	ItemID     uuid.UUID `gorm:"type:uuid;not null;index:idx_rejections_item"`
	RejectedBy uuid.UUID `gorm:"type:uuid;not null"`
	Reason     string    `gorm:"type:text;not null"`
	Category   string    `gorm:"type:varchar(50)"`
	RejectedAt time.Time `gorm:"not null"`
	ResolvedAt *time.Time
}

func (RejectionHistory) TableName() string {
	return "rejection_histories"
}
