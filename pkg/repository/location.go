package repository

import (
	"context"

	"github.com/mdqapps/turnos-api/pkg/models"
	"gorm.io/gorm"
)

// LocationRepository handles database operations for locations
type LocationRepository struct {
	db *gorm.DB
}

var _ LocationRepositoryInterface = (*LocationRepository)(nil)

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *LocationRepository) GetByID(ctx context.Context, id string) (*models.Location, error) {
	var location models.Location
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *LocationRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Location, error) {
	var locations []models.Location
	if len(ids) == 0 {
		return locations, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&locations).Error
	return locations, err
}

// GetAll returns all locations, newest first
func (r *LocationRepository) GetAll(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&locations).Error
	return locations, err
}

func (r *LocationRepository) Update(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Save(location).Error
}

func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Location{}, "id = ?", id).Error
}
