package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is a node in the reporting graph. ManagerID is a back-link into
// the same table; nil means root-level (nobody above this employee).
type Employee struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ManagerID *uuid.UUID `gorm:"type:uuid;index:idx_employees_manager"`
	FullName  string     `gorm:"type:varchar(255);not null"`
	Email     string     `gorm:"type:varchar(255);uniqueIndex:uq_employee_email"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// IsRootLevel reports whether the employee has no manager reference.
func (e *Employee) IsRootLevel() bool {
	return e.ManagerID == nil
}
