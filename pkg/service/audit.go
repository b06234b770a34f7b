package service

import (
	"context"
	"fmt"

	apperrors "github.com/mdqapps/turnos-api/pkg/apperrors"
	"github.com/mdqapps/turnos-api/pkg/logger"
	"github.com/mdqapps/turnos-api/pkg/models"
	"github.com/mdqapps/turnos-api/pkg/repository"
)

// AuditRecorder appends one audit entry and returns its id
type AuditRecorder interface {
	Record(ctx context.Context, action models.AuditAction, entityType models.EntityType, actor models.Actor, entityID string, details map[string]any) (string, error)
}

// defaultAuditLimit caps audit listings when the caller gives no limit
const defaultAuditLimit = 100

// AuditService writes and reads the audit log
type AuditService struct {
	repo repository.AuditLogRepositoryInterface
}

var _ AuditRecorder = (*AuditService)(nil)

// NewAuditService creates a new audit service
func NewAuditService(repo repository.AuditLogRepositoryInterface) *AuditService {
	return &AuditService{repo: repo}
}

// Record appends an entry for a completed state change
func (s *AuditService) Record(ctx context.Context, action models.AuditAction, entityType models.EntityType, actor models.Actor, entityID string, details map[string]any) (string, error) {
	if !action.IsValid() {
		return "", apperrors.NewValidationError("action", fmt.Sprintf("acción desconocida %q", action))
	}
	if details == nil {
		details = map[string]any{}
	}

	entry := &models.AuditLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		UserID:     actor.ID,
		UserEmail:  actor.Email,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return "", fmt.Errorf("failed to write audit log: %w", err)
	}
	return entry.ID, nil
}

// List returns entries matching filter, newest first
func (s *AuditService) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultAuditLimit
	}
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return entries, nil
}

// recordAudit writes an entry after a mutation already succeeded. A failure
// here is logged and swallowed: the change itself is committed.
func recordAudit(ctx context.Context, audit AuditRecorder, action models.AuditAction, entityType models.EntityType, actor models.Actor, entityID string, details map[string]any) {
	if _, err := audit.Record(ctx, action, entityType, actor, entityID, details); err != nil {
		logger.WithContext(ctx).WithFields(map[string]interface{}{
			"action":    action,
			"entity_id": entityID,
		}).Errorf("audit write failed: %v", err)
	}
}
