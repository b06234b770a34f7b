package repository

import (
	"context"

	"github.com/mdqapps/turnos-api/pkg/models"
	"gorm.io/gorm"
)

// AuditLogRepository appends to and reads the audit log
type AuditLogRepository struct {
	db *gorm.DB
}

var _ AuditLogRepositoryInterface = (*AuditLogRepository)(nil)

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List returns audit entries matching filter, newest first
func (r *AuditLogRepository) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != "" {
		query = query.Where("entity_id = ?", filter.EntityID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var entries []models.AuditLog
	err := query.Order("created_at DESC").Find(&entries).Error
	return entries, err
}
