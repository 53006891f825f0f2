package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/ekinkaya/classtrack/internal/app/models"
)

// CreateDefaultData inserts a demo instructor and a small student cohort so a
// fresh development database has something to mark attendance against.
// Existing rows are left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	lgr.Info().Msg("Checking/Creating default development data...")

	instructors := []models.Instructor{
		{ID: "INST-1001", Name: "Ayse Demir", Department: "Computer Science"},
		{ID: "INST-1002", Name: "Mehmet Kaya", Department: "Physics"},
	}
	for _, inst := range instructors {
		sql, args, err := sb.Insert("instructors").
			Columns("id", "name", "department").
			Values(inst.ID, inst.Name, inst.Department).
			Suffix("ON CONFLICT (id) DO NOTHING").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build instructor seed query: %w", err)
		}
		if _, err := dbPool.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error seeding instructor %s: %w", inst.ID, err)
		}
	}

	emptyAggregate, err := json.Marshal(models.NewAttendanceAggregate())
	if err != nil {
		return fmt.Errorf("failed to encode empty aggregate: %w", err)
	}

	cohort := models.Cohort{Branch: "CSE", Year: 2, Section: "A"}
	students := []struct {
		id   string
		name string
	}{
		{"CSE-2024-001", "Elif Yilmaz"},
		{"CSE-2024-002", "Burak Sahin"},
		{"CSE-2024-003", "Zeynep Arslan"},
		{"CSE-2024-004", "Can Ozturk"},
	}
	for _, st := range students {
		sql, args, err := sb.Insert("students").
			Columns("id", "name", "branch", "year", "section", "is_graduated", "attendance").
			Values(st.id, st.name, cohort.Branch, cohort.Year, cohort.Section, false, emptyAggregate).
			Suffix("ON CONFLICT (id) DO NOTHING").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build student seed query: %w", err)
		}
		if _, err := dbPool.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error seeding student %s: %w", st.id, err)
		}
	}

	lgr.Info().
		Int("instructors", len(instructors)).
		Int("students", len(students)).
		Msg("Default development data ensured")
	return nil
}
