package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/mdqapps/turnos-api/pkg/apperrors"
	"github.com/mdqapps/turnos-api/pkg/logger"
	"github.com/mdqapps/turnos-api/pkg/models"
	"github.com/mdqapps/turnos-api/pkg/repository"
	"github.com/mdqapps/turnos-api/pkg/scheduler"
)

// SnapshotService saves and reads frozen weekly rosters
type SnapshotService struct {
	snapshots repository.SnapshotRepositoryInterface
	shifts    repository.ShiftRepositoryInterface
	audit     AuditRecorder
	validator *validator.Validate
	loc       *time.Location
	dir       directory
	now       func() time.Time
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(
	snapshots repository.SnapshotRepositoryInterface,
	shifts repository.ShiftRepositoryInterface,
	employees repository.EmployeeRepositoryInterface,
	locations repository.LocationRepositoryInterface,
	audit AuditRecorder,
	validator *validator.Validate,
	loc *time.Location,
) *SnapshotService {
	if loc == nil {
		loc = time.UTC
	}
	return &SnapshotService{
		snapshots: snapshots,
		shifts:    shifts,
		audit:     audit,
		validator: validator,
		loc:       loc,
		dir:       directory{employees: employees, locations: locations},
		now:       time.Now,
	}
}

// CreateSnapshotRequest picks the week to label the snapshot with. An empty
// date means the current week.
type CreateSnapshotRequest struct {
	Date string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Create freezes every active shift into a snapshot labeled with the week of req.Date.
// The shifts are not filtered by that week.
func (s *SnapshotService) Create(ctx context.Context, actor models.Actor, req *CreateSnapshotRequest) (*models.Snapshot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	anchor := s.now().In(s.loc)
	if req.Date != "" {
		d, err := parseDay("date", req.Date, s.loc)
		if err != nil {
			return nil, err
		}
		anchor = d
	}

	active := true
	shifts, err := s.shifts.List(ctx, models.ShiftFilter{Active: &active})
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	snapshot, err := scheduler.BuildSnapshot(shifts, anchor, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := s.snapshots.Create(ctx, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to create snapshot: %w", err)
	}

	recordAudit(ctx, s.audit, models.ActionSnapshotCreated, models.EntitySnapshot, actor, snapshot.ID, map[string]any{
		"fecha": anchor.Format(time.RFC3339),
	})
	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"snapshot_id": snapshot.ID,
		"shifts":      snapshot.TotalShifts,
	}).Info("snapshot created")

	return &snapshot, nil
}

// Get returns a snapshot with names resolved for its shift copies
func (s *SnapshotService) Get(ctx context.Context, id string) (*models.Snapshot, error) {
	snapshot, err := s.snapshots.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrSnapshotNotFound, "get snapshot")
	}
	if err := s.dir.resolve(ctx, snapshot.Shifts); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// List returns all snapshots, newest week first
func (s *SnapshotService) List(ctx context.Context) ([]models.Snapshot, error) {
	snapshots, err := s.snapshots.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

// Delete removes a snapshot
func (s *SnapshotService) Delete(ctx context.Context, actor models.Actor, id string) error {
	snapshot, err := s.snapshots.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, apperrors.ErrSnapshotNotFound, "get snapshot")
	}

	if err := s.snapshots.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	recordAudit(ctx, s.audit, models.ActionSnapshotDeleted, models.EntitySnapshot, actor, id, map[string]any{
		"nombre":      snapshot.Name,
		"totalTurnos": snapshot.TotalShifts,
		"totalHoras":  snapshot.TotalHours,
	})
	return nil
}

// ExportCSV writes one row per shift copy of the snapshot
func (s *SnapshotService) ExportCSV(ctx context.Context, id string, w io.Writer) error {
	snapshot, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"shift_id", "employee", "location", "date", "start", "end", "duration_hours"}); err != nil {
		return err
	}
	for _, sh := range snapshot.Shifts {
		hours, err := scheduler.DurationHours(sh.StartTime, sh.EndTime)
		if err != nil {
			return fmt.Errorf("shift %s: %w", sh.ID, err)
		}
		if err := writer.Write([]string{
			sh.ID,
			sh.Employee.FullName(),
			sh.Location.Name,
			sh.Date.In(s.loc).Format(dateLayout),
			sh.StartTime,
			sh.EndTime,
			fmt.Sprintf("%.2f", hours),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
