package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/mdqapps/turnos-api/pkg/apperrors"
	"github.com/mdqapps/turnos-api/pkg/logger"
	"github.com/mdqapps/turnos-api/pkg/models"
	"github.com/mdqapps/turnos-api/pkg/repository"
	"github.com/mdqapps/turnos-api/pkg/scheduler"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ShiftService assigns employees to shifts. Every write for an employee goes
// through that employee's lock, so a conflict check and the write it guards
// see the same set of shifts.
type ShiftService struct {
	shifts    repository.ShiftRepositoryInterface
	employees repository.EmployeeRepositoryInterface
	locations repository.LocationRepositoryInterface
	audit     AuditRecorder
	validator *validator.Validate
	loc       *time.Location
	locks     *keyedMutex
	dir       directory
}

// NewShiftService creates a new shift service. Request dates are read as
// calendar days in loc.
func NewShiftService(
	shifts repository.ShiftRepositoryInterface,
	employees repository.EmployeeRepositoryInterface,
	locations repository.LocationRepositoryInterface,
	audit AuditRecorder,
	validator *validator.Validate,
	loc *time.Location,
) *ShiftService {
	if loc == nil {
		loc = time.UTC
	}
	return &ShiftService{
		shifts:    shifts,
		employees: employees,
		locations: locations,
		audit:     audit,
		validator: validator,
		loc:       loc,
		locks:     newKeyedMutex(),
		dir:       directory{employees: employees, locations: locations},
	}
}

// CreateShiftRequest represents the request to assign a single shift
type CreateShiftRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	LocationID string `json:"location_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string `json:"start_time" validate:"required,clock"`
	EndTime    string `json:"end_time" validate:"required,clock"`
}

// UpdateShiftRequest represents a partial edit of a shift
type UpdateShiftRequest struct {
	EmployeeID *string `json:"employee_id,omitempty" validate:"omitempty,min=1"`
	LocationID *string `json:"location_id,omitempty" validate:"omitempty,min=1"`
	Date       *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime  *string `json:"start_time,omitempty" validate:"omitempty,clock"`
	EndTime    *string `json:"end_time,omitempty" validate:"omitempty,clock"`
	Active     *bool   `json:"active,omitempty"`
}

// MoveShiftRequest moves a shift to another location
type MoveShiftRequest struct {
	LocationID string `json:"location_id" validate:"required"`
}

// CheckConflictRequest is a dry run of a create or an edit
type CheckConflictRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string `json:"start_time" validate:"required,clock"`
	EndTime    string `json:"end_time" validate:"required,clock"`
	ExcludeID  string `json:"exclude_id,omitempty"`
}

// FullWeekRequest assigns the same slot on several days of one week.
// Days are offsets from Monday: 0 is Monday, 6 is Sunday.
type FullWeekRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	LocationID string `json:"location_id" validate:"required"`
	WeekOf     string `json:"week_of" validate:"required,datetime=2006-01-02"`
	Days       []int  `json:"days" validate:"dive,min=0,max=6"`
	StartTime  string `json:"start_time" validate:"required,clock"`
	EndTime    string `json:"end_time" validate:"required,clock"`
}

// FullWeekResult lists the shifts created by a full week request
type FullWeekResult struct {
	Shifts []models.Shift `json:"shifts"`
	Count  int            `json:"count"`
}

// List returns the shifts matching filter with employee and location details
func (s *ShiftService) List(ctx context.Context, filter models.ShiftFilter) ([]models.Shift, error) {
	shifts, err := s.shifts.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	if err := s.dir.resolve(ctx, shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}

// ListWeek returns the active shifts of the week containing anchor
func (s *ShiftService) ListWeek(ctx context.Context, anchor time.Time, locationID string) ([]models.Shift, error) {
	monday, sunday := scheduler.Week(anchor.In(s.loc))
	active := true
	return s.List(ctx, models.ShiftFilter{
		LocationID: locationID,
		Active:     &active,
		DateFrom:   &monday,
		DateTo:     &sunday,
	})
}

// Get returns a single shift with its details
func (s *ShiftService) Get(ctx context.Context, id string) (*models.Shift, error) {
	shift, err := s.getShift(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.resolveOne(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// CheckConflict reports whether the proposed shift would collide, without writing anything
func (s *ShiftService) CheckConflict(ctx context.Context, req *CheckConflictRequest) (models.ConflictResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.ConflictResult{}, validationError(err)
	}
	if err := checkRange(req.StartTime, req.EndTime); err != nil {
		return models.ConflictResult{}, err
	}
	day, err := parseDay("date", req.Date, s.loc)
	if err != nil {
		return models.ConflictResult{}, err
	}

	existing, err := s.dayShifts(ctx, req.EmployeeID, day)
	if err != nil {
		return models.ConflictResult{}, err
	}
	return scheduler.CheckConflict(req.EmployeeID, day, req.StartTime, req.EndTime, existing, req.ExcludeID)
}

// Create assigns a shift after checking it against the employee's other
// shifts of that day
func (s *ShiftService) Create(ctx context.Context, actor models.Actor, req *CreateShiftRequest) (*models.Shift, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if err := checkRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	day, err := parseDay("date", req.Date, s.loc)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmployee(ctx, req.EmployeeID); err != nil {
		return nil, err
	}
	if err := s.ensureLocation(ctx, req.LocationID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(req.EmployeeID)
	defer unlock()

	shift := &models.Shift{
		EmployeeID: req.EmployeeID,
		LocationID: req.LocationID,
		Date:       day,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Active:     true,
	}
	if err := s.ensureNoConflict(ctx, shift); err != nil {
		return nil, err
	}

	if err := s.shifts.Create(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}

	recordAudit(ctx, s.audit, models.ActionShiftCreated, models.EntityShift, actor, shift.ID, map[string]any{
		"personalId": shift.EmployeeID,
		"localeId":   shift.LocationID,
		"fecha":      day.Format(dateLayout),
		"horaInicio": shift.StartTime,
		"horaFin":    shift.EndTime,
	})
	logger.WithContext(ctx).WithField("shift_id", shift.ID).Info("shift created")

	if err := s.resolveOne(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// Update applies a partial edit and re-checks conflicts, ignoring the shift's own prior state
func (s *ShiftService) Update(ctx context.Context, actor models.Actor, id string, req *UpdateShiftRequest) (*models.Shift, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	var extra []string
	if req.EmployeeID != nil {
		extra = append(extra, *req.EmployeeID)
	}
	shift, unlock, err := s.lockShift(ctx, id, extra...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	changes := map[string]any{}
	if req.EmployeeID != nil && *req.EmployeeID != shift.EmployeeID {
		if err := s.ensureEmployee(ctx, *req.EmployeeID); err != nil {
			return nil, err
		}
		shift.EmployeeID = *req.EmployeeID
		changes["personalId"] = shift.EmployeeID
	}
	if req.LocationID != nil && *req.LocationID != shift.LocationID {
		if err := s.ensureLocation(ctx, *req.LocationID); err != nil {
			return nil, err
		}
		shift.LocationID = *req.LocationID
		changes["localeId"] = shift.LocationID
	}
	if req.Date != nil {
		day, err := parseDay("date", *req.Date, s.loc)
		if err != nil {
			return nil, err
		}
		if !scheduler.SameDay(day, shift.Date) {
			changes["fecha"] = day.Format(dateLayout)
		}
		shift.Date = day
	}
	if req.StartTime != nil && *req.StartTime != shift.StartTime {
		shift.StartTime = *req.StartTime
		changes["horaInicio"] = shift.StartTime
	}
	if req.EndTime != nil && *req.EndTime != shift.EndTime {
		shift.EndTime = *req.EndTime
		changes["horaFin"] = shift.EndTime
	}
	if req.Active != nil && *req.Active != shift.Active {
		shift.Active = *req.Active
		changes["activo"] = shift.Active
	}

	if err := checkRange(shift.StartTime, shift.EndTime); err != nil {
		return nil, err
	}
	if err := s.ensureNoConflict(ctx, shift); err != nil {
		return nil, err
	}

	shift.Employee, shift.Location = nil, nil
	if err := s.shifts.Update(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to update shift: %w", err)
	}

	recordAudit(ctx, s.audit, models.ActionShiftUpdated, models.EntityShift, actor, shift.ID, changes)

	if err := s.resolveOne(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// Move changes only the location of a shift
func (s *ShiftService) Move(ctx context.Context, actor models.Actor, id string, req *MoveShiftRequest) (*models.Shift, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if err := s.ensureLocation(ctx, req.LocationID); err != nil {
		return nil, err
	}

	shift, unlock, err := s.lockShift(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	previous := shift.LocationID
	shift.LocationID = req.LocationID
	if err := s.shifts.Update(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to move shift: %w", err)
	}

	recordAudit(ctx, s.audit, models.ActionShiftMoved, models.EntityShift, actor, shift.ID, map[string]any{
		"localeAnterior": previous,
		"localeNuevo":    shift.LocationID,
	})

	if err := s.resolveOne(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// Delete removes a shift for good
func (s *ShiftService) Delete(ctx context.Context, actor models.Actor, id string) error {
	shift, unlock, err := s.lockShift(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.shifts.Delete(ctx, shift.ID); err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}

	recordAudit(ctx, s.audit, models.ActionShiftDeleted, models.EntityShift, actor, shift.ID, map[string]any{
		"personalId": shift.EmployeeID,
		"localeId":   shift.LocationID,
		"fecha":      shift.Date.In(s.loc).Format(dateLayout),
	})
	return nil
}

// CreateFullWeek assigns the same slot on every selected day of a week.
// All days are checked against the shifts that existed before the request;
// if any day conflicts nothing is written. Inserts run concurrently and a
// failed insert does not roll back its siblings.
func (s *ShiftService) CreateFullWeek(ctx context.Context, actor models.Actor, req *FullWeekRequest) (*FullWeekResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if len(req.Days) == 0 {
		return nil, apperrors.ErrEmptyBatch
	}
	if err := checkRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	anchor, err := parseDay("week_of", req.WeekOf, s.loc)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmployee(ctx, req.EmployeeID); err != nil {
		return nil, err
	}
	if err := s.ensureLocation(ctx, req.LocationID); err != nil {
		return nil, err
	}

	monday, sunday := scheduler.Week(anchor)
	proposed := weekSlots(monday, req.Days, req.StartTime, req.EndTime)

	unlock := s.locks.Lock(req.EmployeeID)
	defer unlock()

	active := true
	existing, err := s.shifts.List(ctx, models.ShiftFilter{
		EmployeeID: req.EmployeeID,
		Active:     &active,
		DateFrom:   &monday,
		DateTo:     &sunday,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	batch, err := scheduler.CheckConflictsBatch(req.EmployeeID, proposed, existing)
	if err != nil {
		return nil, err
	}
	if batch.Conflict {
		return nil, apperrors.NewConflictError(batch.Message, batch.ConflictingDates...)
	}

	created := make([]models.Shift, len(proposed))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range proposed {
		created[i] = models.Shift{
			EmployeeID: req.EmployeeID,
			LocationID: req.LocationID,
			Date:       p.Date,
			StartTime:  p.StartTime,
			EndTime:    p.EndTime,
			Active:     true,
		}
		shift := &created[i]
		g.Go(func() error {
			return s.shifts.Create(gctx, shift)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to create full week: %w", err)
	}

	dates := make([]string, len(created))
	for i := range created {
		dates[i] = created[i].Date.Format(dateLayout)
	}
	recordAudit(ctx, s.audit, models.ActionFullWeekCreated, models.EntityShift, actor, "", map[string]any{
		"cantidadTurnos": len(created),
		"personalId":     req.EmployeeID,
		"localeId":       req.LocationID,
		"fechas":         dates,
	})
	logger.WithContext(ctx).WithField("count", len(created)).Info("full week created")

	if err := s.dir.resolve(ctx, created); err != nil {
		return nil, err
	}
	return &FullWeekResult{Shifts: created, Count: len(created)}, nil
}

// weekSlots builds one proposed shift per distinct day offset, in day order
func weekSlots(monday time.Time, days []int, start, end string) []models.ProposedShift {
	offsets := make([]int, 0, len(days))
	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			offsets = append(offsets, d)
		}
	}
	sort.Ints(offsets)

	slots := make([]models.ProposedShift, len(offsets))
	for i, d := range offsets {
		slots[i] = models.ProposedShift{
			Date:      time.Date(monday.Year(), monday.Month(), monday.Day()+d, 0, 0, 0, 0, monday.Location()),
			StartTime: start,
			EndTime:   end,
		}
	}
	return slots
}

// lockShift loads a shift and takes the lock of its employee plus any extra
// keys. If the shift changed hands while waiting, it retries with the new owner.
func (s *ShiftService) lockShift(ctx context.Context, id string, extra ...string) (*models.Shift, func(), error) {
	for {
		current, err := s.getShift(ctx, id)
		if err != nil {
			return nil, nil, err
		}

		unlock := s.locks.Lock(append([]string{current.EmployeeID}, extra...)...)
		fresh, err := s.getShift(ctx, id)
		if err != nil {
			unlock()
			return nil, nil, err
		}
		if fresh.EmployeeID == current.EmployeeID {
			return fresh, unlock, nil
		}
		unlock()
	}
}

// ensureNoConflict checks an active shift against its employee's other shifts of the day
func (s *ShiftService) ensureNoConflict(ctx context.Context, shift *models.Shift) error {
	if !shift.Active {
		return nil
	}
	day := scheduler.DayOf(shift.Date.In(s.loc))
	existing, err := s.dayShifts(ctx, shift.EmployeeID, day)
	if err != nil {
		return err
	}
	res, err := scheduler.CheckConflict(shift.EmployeeID, day, shift.StartTime, shift.EndTime, existing, shift.ID)
	if err != nil {
		return err
	}
	if res.Conflict {
		return apperrors.NewConflictError(res.Message)
	}
	return nil
}

// dayShifts returns the employee's active shifts on day, with location names
func (s *ShiftService) dayShifts(ctx context.Context, employeeID string, day time.Time) ([]models.Shift, error) {
	active := true
	from := scheduler.DayOf(day)
	to := time.Date(from.Year(), from.Month(), from.Day(), 23, 59, 59, int(999*time.Millisecond), from.Location())
	shifts, err := s.shifts.List(ctx, models.ShiftFilter{
		EmployeeID: employeeID,
		Active:     &active,
		DateFrom:   &from,
		DateTo:     &to,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	if err := s.dir.attachLocations(ctx, shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}

func (s *ShiftService) getShift(ctx context.Context, id string) (*models.Shift, error) {
	shift, err := s.shifts.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrShiftNotFound, "get shift")
	}
	return shift, nil
}

func (s *ShiftService) resolveOne(ctx context.Context, shift *models.Shift) error {
	one := []models.Shift{*shift}
	if err := s.dir.resolve(ctx, one); err != nil {
		return err
	}
	*shift = one[0]
	return nil
}

func (s *ShiftService) ensureEmployee(ctx context.Context, id string) error {
	if _, err := s.employees.GetByID(ctx, id); err != nil {
		return notFoundOr(err, apperrors.ErrEmployeeNotFound, "verify employee")
	}
	return nil
}

func (s *ShiftService) ensureLocation(ctx context.Context, id string) error {
	if _, err := s.locations.GetByID(ctx, id); err != nil {
		return notFoundOr(err, apperrors.ErrLocationNotFound, "verify location")
	}
	return nil
}

// notFoundOr maps gorm's not found to target and wraps anything else
func notFoundOr(err, target error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
