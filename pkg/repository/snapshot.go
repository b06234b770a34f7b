package repository

import (
	"context"

	"github.com/mdqapps/turnos-api/pkg/models"
	"gorm.io/gorm"
)

// SnapshotRepository handles database operations for weekly snapshots
type SnapshotRepository struct {
	db *gorm.DB
}

var _ SnapshotRepositoryInterface = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Create(ctx context.Context, snapshot *models.Snapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *SnapshotRepository) GetByID(ctx context.Context, id string) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	if err := r.db.WithContext(ctx).First(&snapshot, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// GetAll returns every snapshot, most recent week first
func (r *SnapshotRepository) GetAll(ctx context.Context) ([]models.Snapshot, error) {
	var snapshots []models.Snapshot
	err := r.db.WithContext(ctx).Order("week_start DESC").Order("created_at DESC").Find(&snapshots).Error
	return snapshots, err
}

func (r *SnapshotRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Snapshot{}, "id = ?", id).Error
}
