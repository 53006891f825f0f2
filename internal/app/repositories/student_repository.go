package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekinkaya/classtrack/internal/app/models"
	"github.com/ekinkaya/classtrack/internal/pkg/apperrors"
	"github.com/ekinkaya/classtrack/internal/pkg/logger"
)

// StudentRepository handles student database operations. The attendance
// aggregate lives in a jsonb column owned entirely by this application; reads
// and the bulk mark-attendance write go through here.
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var studentColumns = []string{"id", "name", "branch", "year", "section", "is_graduated", "attendance"}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var st models.Student
	var agg []byte
	err := row.Scan(&st.ID, &st.Name, &st.Cohort.Branch, &st.Cohort.Year, &st.Cohort.Section, &st.IsGraduated, &agg)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(agg, &st.Attendance); err != nil {
		return nil, fmt.Errorf("error decoding attendance aggregate: %w", err)
	}
	if st.Attendance.Subjects == nil {
		st.Attendance = models.NewAttendanceAggregate()
	}
	return &st, nil
}

// GetByID retrieves a student by id
func (r *StudentRepository) GetByID(ctx context.Context, studentID string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": studentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	st, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentID", studentID).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return st, nil
}

// ListByCohort returns all non-graduated students of a cohort, used to build
// the roster a mark-attendance submission must enumerate.
func (r *StudentRepository) ListByCohort(ctx context.Context, tx pgx.Tx, cohort models.Cohort) ([]models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{
			"branch":       cohort.Branch,
			"year":         cohort.Year,
			"section":      cohort.Section,
			"is_graduated": false,
		}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list cohort query: %w", err)
	}

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying cohort students")
		return nil, fmt.Errorf("error listing cohort students: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, *st)
	}
	return students, rows.Err()
}

// BulkUpdateAggregates writes every touched student's aggregate in a single
// statement. One mark-attendance call issues exactly one of these regardless
// of cohort size.
func (r *StudentRepository) BulkUpdateAggregates(ctx context.Context, tx pgx.Tx, students []models.Student) error {
	if len(students) == 0 {
		return nil
	}

	values := make([]string, 0, len(students))
	args := make([]interface{}, 0, len(students)*2)
	for i, st := range students {
		agg, err := json.Marshal(st.Attendance)
		if err != nil {
			return fmt.Errorf("error encoding attendance aggregate: %w", err)
		}
		values = append(values, fmt.Sprintf("($%d, $%d::jsonb)", i*2+1, i*2+2))
		args = append(args, st.ID, agg)
	}

	sql := fmt.Sprintf(`
		UPDATE students AS s
		SET attendance = v.attendance
		FROM (VALUES %s) AS v(id, attendance)
		WHERE s.id = v.id
	`, strings.Join(values, ", "))

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int("students", len(students)).Msg("Error executing bulk aggregate update")
		return fmt.Errorf("error updating aggregates: %w", err)
	}
	if int(tag.RowsAffected()) != len(students) {
		// The roster was loaded in this same transaction, so a shortfall means
		// a student row disappeared mid-flight.
		return fmt.Errorf("%w: aggregate update touched %d of %d students",
			apperrors.ErrStorageUnavailable, tag.RowsAffected(), len(students))
	}

	logger.Info().Int("students", len(students)).Msg("Aggregates updated")
	return nil
}

// AdvanceYear moves every non-graduated student of the target year up by one.
func (r *StudentRepository) AdvanceYear(ctx context.Context, year int) (int64, error) {
	sql, args, err := r.sb.Update("students").
		Set("year", squirrel.Expr("year + 1")).
		Where(squirrel.Eq{"year": year, "is_graduated": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build advance year query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int("year", year).Msg("Error executing advance year query")
		return 0, fmt.Errorf("error promoting students: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GraduateFinalYear flags every non-graduated final-year student and parks
// them at the terminal year marker. One-way transition.
func (r *StudentRepository) GraduateFinalYear(ctx context.Context, finalYear int) (int64, error) {
	sql, args, err := r.sb.Update("students").
		Set("is_graduated", true).
		Set("year", models.GraduatedYear).
		Where(squirrel.Eq{"year": finalYear, "is_graduated": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build graduate query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing graduate query")
		return 0, fmt.Errorf("error graduating students: %w", err)
	}
	return tag.RowsAffected(), nil
}
