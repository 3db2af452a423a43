package approval

import (
	"context"
	"errors"
	"time"

	"go-hrflow/internal/tenant"

	"gorm.io/gorm"
)

type RejectionRepository interface {
	WithTx(tx *gorm.DB) RejectionRepository
	Create(ctx context.Context, rec *RejectionHistory) error
	FindByItem(ctx context.Context, companyID string, kind Kind, itemID string) ([]RejectionHistory, error)

	// ResolveLatestOpen stamps the newest unresolved record for the item
	// and reports whether one was stamped. The resolved_at IS NULL guard
	// makes the resolution happen at most once per record.
	ResolveLatestOpen(ctx context.Context, companyID string, kind Kind, itemID string, at time.Time) (bool, error)
}

type rejectionRepository struct {
	db *gorm.DB
}

func NewRejectionRepository(db *gorm.DB) RejectionRepository {
	return &rejectionRepository{db: db}
}

func (r *rejectionRepository) WithTx(tx *gorm.DB) RejectionRepository {
	return &rejectionRepository{db: tx}
}

func (r *rejectionRepository) Create(ctx context.Context, rec *RejectionHistory) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *rejectionRepository) FindByItem(ctx context.Context, companyID string, kind Kind, itemID string) ([]RejectionHistory, error) {
	var recs []RejectionHistory
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("item_kind = ?", kind).
		Where("item_id = ?", itemID).
		Order("rejected_at DESC").
		Find(&recs).Error
	return recs, err
}

func (r *rejectionRepository) ResolveLatestOpen(ctx context.Context, companyID string, kind Kind, itemID string, at time.Time) (bool, error) {
	var latest RejectionHistory
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("item_kind = ?", kind).
		Where("item_id = ?", itemID).
		Where("resolved_at IS NULL").
		Order("rejected_at DESC").
		Take(&latest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	// The IS NULL guard keeps the stamp idempotent under concurrent approves.
	res := r.db.WithContext(ctx).
		Model(&RejectionHistory{}).
		Where("id = ?", latest.ID).
		Where("resolved_at IS NULL").
		Update("resolved_at", at)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
