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
	"github.com/ekinkaya/classtrack/internal/pkg/logger"
)

// InstructorRepository handles instructor database operations. Identity
// management is owned by the surrounding user service; this repository only
// resolves the opaque ids the timetable references.
type InstructorRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInstructorRepository creates a new InstructorRepository
func NewInstructorRepository(db *pgxpool.Pool) *InstructorRepository {
	return &InstructorRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByID retrieves an instructor by id
func (r *InstructorRepository) GetByID(ctx context.Context, instructorID string) (*models.Instructor, error) {
	sql, args, err := r.sb.Select("id", "name", "department").
		From("instructors").
		Where(squirrel.Eq{"id": instructorID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get instructor query: %w", err)
	}

	var ins models.Instructor
	err = r.db.QueryRow(ctx, sql, args...).Scan(&ins.ID, &ins.Name, &ins.Department)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstructorNotFound
		}
		logger.Error().Err(err).Str("instructorID", instructorID).Msg("Error scanning instructor row")
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}
	return &ins, nil
}
