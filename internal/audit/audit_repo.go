package audit

import (
	"context"

	"go-hrflow/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, entry *LogEntry) error
	FindByEntity(ctx context.Context, companyID, entityType, entityID string) ([]LogEntry, error)
	FindAllByCompany(ctx context.Context, companyID string, limit int) ([]LogEntry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *LogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindByEntity(ctx context.Context, companyID, entityType, entityID string) ([]LogEntry, error) {
	var entries []LogEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("entity_type = ?", entityType).
		Where("entity_id = ?", entityID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, limit int) ([]LogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	var entries []LogEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
