package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ekinkaya/classtrack/internal/app/models"
	"github.com/ekinkaya/classtrack/internal/db"
)

// Store interfaces the services depend on. The pgx repositories in
// internal/app/repositories satisfy them; tests substitute in-memory fakes.
// Methods that must share the mark-attendance transaction take the pgx.Tx
// explicitly.

// SlotStore persists timetable slots.
type SlotStore interface {
	Insert(ctx context.Context, slot *models.TimetableSlot) error
	GetByID(ctx context.Context, slotID string) (*models.TimetableSlot, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]models.TimetableSlot, error)
	ListByCohort(ctx context.Context, cohort models.Cohort, day string) ([]models.TimetableSlot, error)
	Delete(ctx context.Context, instructorID, slotID string) error
}

// SessionStore persists attendance sessions.
type SessionStore interface {
	Find(ctx context.Context, tx pgx.Tx, slotID string, date time.Time) (*models.SessionRecord, error)
	Create(ctx context.Context, tx pgx.Tx, rec *models.SessionRecord) error
	ReplaceAbsentees(ctx context.Context, tx pgx.Tx, sessionID string, absentees []string) error
	ListBySlot(ctx context.Context, slotID string, limit int, offset uint64) ([]models.SessionRecord, error)
	CountBySlot(ctx context.Context, slotID string) (int64, error)
}

// StudentStore persists students and their attendance aggregates.
type StudentStore interface {
	GetByID(ctx context.Context, studentID string) (*models.Student, error)
	ListByCohort(ctx context.Context, tx pgx.Tx, cohort models.Cohort) ([]models.Student, error)
	BulkUpdateAggregates(ctx context.Context, tx pgx.Tx, students []models.Student) error
	AdvanceYear(ctx context.Context, year int) (int64, error)
	GraduateFinalYear(ctx context.Context, finalYear int) (int64, error)
}

// InstructorStore resolves instructor ids.
type InstructorStore interface {
	GetByID(ctx context.Context, instructorID string) (*models.Instructor, error)
}

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// AggregateCache is the best-effort read cache for student aggregates.
type AggregateCache interface {
	Get(ctx context.Context, studentID string) (*models.Student, bool)
	Set(ctx context.Context, st *models.Student)
	Invalidate(ctx context.Context, studentIDs ...string)
	InvalidateAll(ctx context.Context)
}
