package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/mdqapps/turnos-api/pkg/apperrors"
	"github.com/mdqapps/turnos-api/pkg/models"
	"github.com/mdqapps/turnos-api/pkg/repository"
)

// LocationService handles business logic for locations
type LocationService struct {
	repo      repository.LocationRepositoryInterface
	validator *validator.Validate
}

// NewLocationService creates a new location service
func NewLocationService(repo repository.LocationRepositoryInterface, validator *validator.Validate) *LocationService {
	return &LocationService{repo: repo, validator: validator}
}

// LocationRequest represents the request to create or replace a location
type LocationRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Address string `json:"address,omitempty" validate:"omitempty,max=200"`
}

func (s *LocationService) Create(ctx context.Context, actor models.Actor, req *LocationRequest) (*models.Location, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	location := &models.Location{
		Name:      req.Name,
		Address:   req.Address,
		CreatedBy: actor.ID,
	}
	if err := s.repo.Create(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}
	return location, nil
}

func (s *LocationService) GetByID(ctx context.Context, id string) (*models.Location, error) {
	location, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrLocationNotFound, "get location")
	}
	return location, nil
}

func (s *LocationService) GetAll(ctx context.Context) ([]models.Location, error) {
	locations, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

func (s *LocationService) Update(ctx context.Context, id string, req *LocationRequest) (*models.Location, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	location, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	location.Name = req.Name
	location.Address = req.Address

	if err := s.repo.Update(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}
	return location, nil
}

// Delete removes a location. Shifts that pointed at it show a placeholder.
func (s *LocationService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	return nil
}
