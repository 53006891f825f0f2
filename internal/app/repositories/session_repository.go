package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekinkaya/classtrack/internal/app/models"
	"github.com/ekinkaya/classtrack/internal/pkg/apperrors"
	"github.com/ekinkaya/classtrack/internal/pkg/logger"
)

const sessionSlotDateConstraint = "attendance_sessions_slot_date_key"

// SessionRepository handles attendance session database operations
type SessionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var sessionColumns = []string{
	"id", "slot_id", "session_date",
	"branch", "year", "section", "subject",
	"absentees", "created_at", "updated_at",
}

func scanSession(row pgx.Row) (*models.SessionRecord, error) {
	var rec models.SessionRecord
	err := row.Scan(
		&rec.ID, &rec.SlotID, &rec.SessionDate,
		&rec.Cohort.Branch, &rec.Cohort.Year, &rec.Cohort.Section, &rec.Subject,
		&rec.Absentees, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Find returns the session for (slot, date) or nil when none has been marked.
// The date must already be normalized to midnight UTC.
func (r *SessionRepository) Find(ctx context.Context, tx pgx.Tx, slotID string, date time.Time) (*models.SessionRecord, error) {
	sql, args, err := r.sb.Select(sessionColumns...).
		From("attendance_sessions").
		Where(squirrel.Eq{"slot_id": slotID, "session_date": date}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find session query: %w", err)
	}

	rec, err := scanSession(tx.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Str("slotID", slotID).Time("date", date).Msg("Error scanning session row")
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}
	return rec, nil
}

// Create inserts a new session record inside the mark transaction. A
// concurrent first mark for the same (slot, date) loses the race on the
// uniqueness constraint; the caller then retries as a correction. The insert
// uses ON CONFLICT DO NOTHING so the losing side gets ErrConflict back without
// aborting the enclosing transaction; a raised unique violation would poison
// the tx and the caller's follow-up Find could never run.
func (r *SessionRepository) Create(ctx context.Context, tx pgx.Tx, rec *models.SessionRecord) error {
	sql, args, err := r.sb.Insert("attendance_sessions").
		Columns("id", "slot_id", "session_date", "branch", "year", "section", "subject", "absentees").
		Values(rec.ID, rec.SlotID, rec.SessionDate, rec.Cohort.Branch, rec.Cohort.Year, rec.Cohort.Section, rec.Subject, rec.Absentees).
		Suffix("ON CONFLICT ON CONSTRAINT " + sessionSlotDateConstraint + " DO NOTHING").
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create session query: %w", err)
	}

	err = tx.QueryRow(ctx, sql, args...).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrConflict
		}
		logger.Error().Err(err).Str("slotID", rec.SlotID).Msg("Error executing create session query")
		return fmt.Errorf("error creating session: %w", err)
	}
	return nil
}

// ReplaceAbsentees swaps the stored absentee set of an existing session.
func (r *SessionRepository) ReplaceAbsentees(ctx context.Context, tx pgx.Tx, sessionID string, absentees []string) error {
	sql, args, err := r.sb.Update("attendance_sessions").
		Set("absentees", absentees).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": sessionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build replace absentees query: %w", err)
	}

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("sessionID", sessionID).Msg("Error executing replace absentees query")
		return fmt.Errorf("error updating session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// ListBySlot returns one page of a slot's marked sessions, newest first.
func (r *SessionRepository) ListBySlot(ctx context.Context, slotID string, limit int, offset uint64) ([]models.SessionRecord, error) {
	sql, args, err := r.sb.Select(sessionColumns...).
		From("attendance_sessions").
		Where(squirrel.Eq{"slot_id": slotID}).
		OrderBy("session_date DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list sessions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("slotID", slotID).Msg("Error querying sessions")
		return nil, fmt.Errorf("error listing sessions: %w", err)
	}
	defer rows.Close()

	var records []models.SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning session row: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// CountBySlot returns how many sessions a slot has on record.
func (r *SessionRepository) CountBySlot(ctx context.Context, slotID string) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("attendance_sessions").
		Where(squirrel.Eq{"slot_id": slotID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count sessions query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Str("slotID", slotID).Msg("Error counting sessions")
		return 0, fmt.Errorf("error counting sessions: %w", err)
	}
	return total, nil
}
