package repository

import (
	"context"

	"github.com/mdqapps/turnos-api/pkg/models"
	"gorm.io/gorm"
)

// ShiftRepository handles database operations for shifts
type ShiftRepository struct {
	db *gorm.DB
}

var _ ShiftRepositoryInterface = (*ShiftRepository)(nil)

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *gorm.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// Create creates a new shift
func (r *ShiftRepository) Create(ctx context.Context, shift *models.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

// GetByID retrieves a shift by ID
func (r *ShiftRepository) GetByID(ctx context.Context, id string) (*models.Shift, error) {
	var shift models.Shift
	if err := r.db.WithContext(ctx).First(&shift, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shift, nil
}

// List retrieves shifts matching filter, ordered by date
func (r *ShiftRepository) List(ctx context.Context, filter models.ShiftFilter) ([]models.Shift, error) {
	query := r.db.WithContext(ctx).Model(&models.Shift{})

	if filter.LocationID != "" {
		query = query.Where("location_id = ?", filter.LocationID)
	}
	if filter.EmployeeID != "" {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.DateFrom != nil {
		query = query.Where("shift_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("shift_date <= ?", *filter.DateTo)
	}

	var shifts []models.Shift
	err := query.Order("shift_date ASC").Order("start_time ASC").Find(&shifts).Error
	return shifts, err
}

// Update saves every field of shift
func (r *ShiftRepository) Update(ctx context.Context, shift *models.Shift) error {
	return r.db.WithContext(ctx).Save(shift).Error
}

// Delete deletes a shift
func (r *ShiftRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Shift{}, "id = ?", id).Error
}
