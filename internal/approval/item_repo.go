package approval

import (
	"context"
	"time"

	"go-hrflow/internal/tenant"

	"gorm.io/gorm"
)

// TransitionPatch is the fixed column set a conditional update may touch.
// Each transition writes an enumerated subset; there is no generic patch
// surface.
type TransitionPatch struct {
	Status            Status
	SubmittedAt       *time.Time
	ApproverID        *string
	DecidedAt         *time.Time
	RejectionReason   *string
	RejectionCategory *string
	ClearDecision     bool // submit resets approver/decision/rejection columns
}

type ItemRepository interface {
	WithTx(tx *gorm.DB) ItemRepository
	FindByIDAndCompany(ctx context.Context, companyID string, kind Kind, id string) (*Item, error)
	ListSubmittedByOwners(ctx context.Context, companyID string, kind Kind, ownerIDs []string) ([]Item, error)

	// TransitionStatus applies patch iff the row's current status is one of
	// from, in a single conditional UPDATE. It reports false when the row
	// was not in any of the from states anymore (a lost race, or an illegal
	// call) without touching it.
	TransitionStatus(ctx context.Context, companyID string, kind Kind, id string, from []Status, patch TransitionPatch) (bool, error)
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) WithTx(tx *gorm.DB) ItemRepository {
	return &itemRepository{db: tx}
}

const itemColumns = "id, company_id, employee_id, status, submitted_at, approver_id, decided_at, rejection_reason, rejection_category"

func (r *itemRepository) FindByIDAndCompany(ctx context.Context, companyID string, kind Kind, id string) (*Item, error) {
	var item Item
	err := r.db.WithContext(ctx).
		Table(kind.Table()).
		Select(itemColumns).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Take(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) ListSubmittedByOwners(ctx context.Context, companyID string, kind Kind, ownerIDs []string) ([]Item, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}
	var items []Item
	err := r.db.WithContext(ctx).
		Table(kind.Table()).
		Select(itemColumns).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id IN ?", ownerIDs).
		Where("status = ?", StatusSubmitted).
		Where("deleted_at IS NULL").
		Order("submitted_at ASC").
		Find(&items).Error
	return items, err
}

func (r *itemRepository) TransitionStatus(ctx context.Context, companyID string, kind Kind, id string, from []Status, patch TransitionPatch) (bool, error) {
	values := map[string]any{
		"status":     patch.Status,
		"updated_at": time.Now().UTC(),
	}
	if patch.SubmittedAt != nil {
		values["submitted_at"] = *patch.SubmittedAt
	}
	if patch.ClearDecision {
		values["approver_id"] = nil
		values["decided_at"] = nil
		values["rejection_reason"] = nil
		values["rejection_category"] = nil
	}
	if patch.ApproverID != nil {
		values["approver_id"] = *patch.ApproverID
	}
	if patch.DecidedAt != nil {
		values["decided_at"] = *patch.DecidedAt
	}
	if patch.RejectionReason != nil {
		values["rejection_reason"] = *patch.RejectionReason
	}
	if patch.RejectionCategory != nil {
		values["rejection_category"] = *patch.RejectionCategory
	}

	res := r.db.WithContext(ctx).
		Table(kind.Table()).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Where("status IN ?", from).
		Where("deleted_at IS NULL").
		Updates(values)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}
