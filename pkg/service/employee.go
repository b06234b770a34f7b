package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/mdqapps/turnos-api/pkg/apperrors"
	"github.com/mdqapps/turnos-api/pkg/models"
	"github.com/mdqapps/turnos-api/pkg/repository"
)

// EmployeeService handles business logic for employees
type EmployeeService struct {
	repo      repository.EmployeeRepositoryInterface
	shifts    repository.ShiftRepositoryInterface
	validator *validator.Validate
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(repo repository.EmployeeRepositoryInterface, shifts repository.ShiftRepositoryInterface, validator *validator.Validate) *EmployeeService {
	return &EmployeeService{
		repo:      repo,
		shifts:    shifts,
		validator: validator,
	}
}

// CreateEmployeeRequest represents the request to add an employee
type CreateEmployeeRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=40"`
}

// UpdateEmployeeRequest represents the request to edit an employee
type UpdateEmployeeRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=40"`
}

// Create creates a new employee
func (s *EmployeeService) Create(ctx context.Context, actor models.Actor, req *CreateEmployeeRequest) (*models.Employee, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	employee := &models.Employee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		CreatedBy: actor.ID,
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return employee, nil
}

// GetByID retrieves an employee
func (s *EmployeeService) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	employee, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrEmployeeNotFound, "get employee")
	}
	return employee, nil
}

// GetAll lists employees by last name
func (s *EmployeeService) GetAll(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// Update edits an employee. Once an employee has shifts only the phone may change.
func (s *EmployeeService) Update(ctx context.Context, id string, req *UpdateEmployeeRequest) (*models.Employee, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	employee, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	renamed := (req.FirstName != nil && *req.FirstName != employee.FirstName) ||
		(req.LastName != nil && *req.LastName != employee.LastName)
	if renamed {
		shifts, err := s.shifts.List(ctx, models.ShiftFilter{EmployeeID: id})
		if err != nil {
			return nil, fmt.Errorf("failed to list shifts: %w", err)
		}
		if len(shifts) > 0 {
			return nil, apperrors.NewValidationError("first_name", "no se puede cambiar el nombre de un empleado con turnos asignados")
		}
	}

	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}

	if err := s.repo.Update(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee, nil
}

// Delete removes an employee. Their shifts stay and render with a placeholder name.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}
