package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekinkaya/classtrack/internal/app/models"
	"github.com/ekinkaya/classtrack/internal/pkg/apperrors"
	"github.com/ekinkaya/classtrack/internal/pkg/dberrors"
	"github.com/ekinkaya/classtrack/internal/pkg/logger"
)

const slotOverlapConstraint = "timetable_slots_no_overlap"

// SlotRepository handles timetable slot database operations
type SlotRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSlotRepository creates a new SlotRepository
func NewSlotRepository(db *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var slotColumns = []string{
	"id", "instructor_id", "day", "start_time", "end_time",
	"start_minutes", "end_minutes", "period_index",
	"branch", "year", "section", "subject", "room", "kind", "lab_batch", "created_at",
}

func scanSlot(row pgx.Row) (*models.TimetableSlot, error) {
	var s models.TimetableSlot
	err := row.Scan(
		&s.ID, &s.InstructorID, &s.Day, &s.StartTime, &s.EndTime,
		&s.StartMinutes, &s.EndMinutes, &s.PeriodIndex,
		&s.Cohort.Branch, &s.Cohort.Year, &s.Cohort.Section,
		&s.Subject, &s.Room, &s.Kind, &s.LabBatch, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Insert persists a new slot. The timetable_slots_no_overlap exclusion
// constraint is the storage-level backstop for the service-level conflict
// check; a violation maps to the same conflict error.
func (r *SlotRepository) Insert(ctx context.Context, slot *models.TimetableSlot) error {
	sql, args, err := r.sb.Insert("timetable_slots").
		Columns(slotColumns[:len(slotColumns)-1]...).
		Values(
			slot.ID, slot.InstructorID, slot.Day, slot.StartTime, slot.EndTime,
			slot.StartMinutes, slot.EndMinutes, slot.PeriodIndex,
			slot.Cohort.Branch, slot.Cohort.Year, slot.Cohort.Section,
			slot.Subject, slot.Room, slot.Kind, slot.LabBatch,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert slot SQL")
		return fmt.Errorf("failed to build insert slot query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&slot.CreatedAt)
	if err != nil {
		if dberrors.IsExclusionViolation(err, slotOverlapConstraint) {
			logger.Warn().Str("instructorID", slot.InstructorID).Str("day", slot.Day).Msg("Slot insert rejected by overlap constraint")
			if clash := r.findColliding(ctx, slot); clash != nil {
				return apperrors.NewSlotConflictError(clash.ID, clash.Subject, clash.Day, clash.StartTime, clash.EndTime)
			}
			return apperrors.ErrSlotConflict
		}
		logger.Error().Err(err).Str("instructorID", slot.InstructorID).Msg("Error executing insert slot query")
		return fmt.Errorf("error inserting slot: %w", err)
	}

	logger.Info().Str("slotID", slot.ID).Str("instructorID", slot.InstructorID).Str("subject", slot.Subject).Msg("Slot created")
	return nil
}

// findColliding re-queries the slot the exclusion constraint collided with so
// the conflict error can name it. Best effort: a lookup failure degrades to
// the bare conflict sentinel.
func (r *SlotRepository) findColliding(ctx context.Context, slot *models.TimetableSlot) *models.TimetableSlot {
	sql, args, err := r.sb.Select(slotColumns...).
		From("timetable_slots").
		Where(squirrel.Eq{"instructor_id": slot.InstructorID}).
		Where("lower(day) = lower(?)", slot.Day).
		Where("start_minutes < ? AND ? < end_minutes", slot.EndMinutes, slot.StartMinutes).
		Limit(1).
		ToSql()
	if err != nil {
		return nil
	}

	clash, err := scanSlot(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			logger.Debug().Err(err).Str("instructorID", slot.InstructorID).Msg("Could not resolve colliding slot")
		}
		return nil
	}
	return clash
}

// GetByID retrieves a slot by id
func (r *SlotRepository) GetByID(ctx context.Context, slotID string) (*models.TimetableSlot, error) {
	sql, args, err := r.sb.Select(slotColumns...).
		From("timetable_slots").
		Where(squirrel.Eq{"id": slotID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get slot query: %w", err)
	}

	slot, err := scanSlot(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSlotNotFound
		}
		logger.Error().Err(err).Str("slotID", slotID).Msg("Error scanning slot row")
		return nil, fmt.Errorf("error retrieving slot: %w", err)
	}
	return slot, nil
}

// ListByInstructor returns all of an instructor's slots ordered by period
// index. The ordering here is the single sort the timetable projection relies
// on; weekday grouping buckets this list without re-sorting.
func (r *SlotRepository) ListByInstructor(ctx context.Context, instructorID string) ([]models.TimetableSlot, error) {
	sql, args, err := r.sb.Select(slotColumns...).
		From("timetable_slots").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		OrderBy("period_index", "created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list slots query: %w", err)
	}

	return r.querySlots(ctx, sql, args)
}

// ListByCohort returns all slots serving a cohort on a weekday, across all
// instructors.
func (r *SlotRepository) ListByCohort(ctx context.Context, cohort models.Cohort, day string) ([]models.TimetableSlot, error) {
	sql, args, err := r.sb.Select(slotColumns...).
		From("timetable_slots").
		Where(squirrel.Eq{"branch": cohort.Branch, "year": cohort.Year, "section": cohort.Section}).
		Where("lower(day) = lower(?)", day).
		OrderBy("period_index", "created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list cohort slots query: %w", err)
	}

	return r.querySlots(ctx, sql, args)
}

func (r *SlotRepository) querySlots(ctx context.Context, sql string, args []interface{}) ([]models.TimetableSlot, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying slots")
		return nil, fmt.Errorf("error listing slots: %w", err)
	}
	defer rows.Close()

	var slots []models.TimetableSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning slot row: %w", err)
		}
		slots = append(slots, *slot)
	}
	return slots, rows.Err()
}

// Delete removes a slot by id for the owning instructor
func (r *SlotRepository) Delete(ctx context.Context, instructorID, slotID string) error {
	sql, args, err := r.sb.Delete("timetable_slots").
		Where(squirrel.Eq{"id": slotID, "instructor_id": instructorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete slot query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("slotID", slotID).Msg("Error executing delete slot query")
		return fmt.Errorf("error deleting slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSlotNotFound
	}

	logger.Info().Str("slotID", slotID).Str("instructorID", instructorID).Msg("Slot removed")
	return nil
}
