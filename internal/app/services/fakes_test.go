package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ekinkaya/classtrack/internal/app/models"
	"github.com/ekinkaya/classtrack/internal/db"
	"github.com/ekinkaya/classtrack/internal/pkg/apperrors"
	"github.com/ekinkaya/classtrack/internal/pkg/helpers"
)

// In-memory store fakes. Transactional methods receive a nil pgx.Tx from
// fakeTxRunner and ignore it.

type fakeSlotStore struct {
	slots []models.TimetableSlot
}

func (f *fakeSlotStore) Insert(_ context.Context, slot *models.TimetableSlot) error {
	slot.CreatedAt = time.Now()
	f.slots = append(f.slots, *slot)
	return nil
}

func (f *fakeSlotStore) GetByID(_ context.Context, slotID string) (*models.TimetableSlot, error) {
	for i := range f.slots {
		if f.slots[i].ID == slotID {
			s := f.slots[i]
			return &s, nil
		}
	}
	return nil, apperrors.ErrSlotNotFound
}

func (f *fakeSlotStore) ListByInstructor(_ context.Context, instructorID string) ([]models.TimetableSlot, error) {
	var out []models.TimetableSlot
	for _, s := range f.slots {
		if s.InstructorID == instructorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotStore) ListByCohort(_ context.Context, cohort models.Cohort, day string) ([]models.TimetableSlot, error) {
	var out []models.TimetableSlot
	for _, s := range f.slots {
		if s.Cohort == cohort && helpers.NormalizeDay(s.Day) == helpers.NormalizeDay(day) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotStore) Delete(_ context.Context, instructorID, slotID string) error {
	for i, s := range f.slots {
		if s.ID == slotID && s.InstructorID == instructorID {
			f.slots = append(f.slots[:i], f.slots[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrSlotNotFound
}

type fakeSessionStore struct {
	sessions map[string]*models.SessionRecord // keyed slotID|date

	// When set, the next Create returns ErrConflict as if a concurrent insert
	// won the (slot_id, session_date) race, after silently storing raceWinner.
	// Mirrors the repository's ON CONFLICT DO NOTHING insert, which reports the
	// lost race without aborting the surrounding transaction.
	raceWinner *models.SessionRecord
}

func sessionKey(slotID string, date time.Time) string {
	return slotID + "|" + date.Format("2006-01-02")
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*models.SessionRecord)}
}

func (f *fakeSessionStore) Find(_ context.Context, _ pgx.Tx, slotID string, date time.Time) (*models.SessionRecord, error) {
	rec, ok := f.sessions[sessionKey(slotID, date)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeSessionStore) Create(_ context.Context, _ pgx.Tx, rec *models.SessionRecord) error {
	key := sessionKey(rec.SlotID, rec.SessionDate)
	if f.raceWinner != nil {
		f.sessions[key] = f.raceWinner
		f.raceWinner = nil
		return apperrors.ErrConflict
	}
	if _, ok := f.sessions[key]; ok {
		return apperrors.ErrConflict
	}
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	cp := *rec
	f.sessions[key] = &cp
	return nil
}

func (f *fakeSessionStore) ReplaceAbsentees(_ context.Context, _ pgx.Tx, sessionID string, absentees []string) error {
	for _, rec := range f.sessions {
		if rec.ID == sessionID {
			rec.Absentees = absentees
			rec.UpdatedAt = time.Now()
			return nil
		}
	}
	return apperrors.ErrSessionNotFound
}

func (f *fakeSessionStore) ListBySlot(_ context.Context, slotID string, limit int, offset uint64) ([]models.SessionRecord, error) {
	var out []models.SessionRecord
	for _, rec := range f.sessions {
		if rec.SlotID == slotID {
			out = append(out, *rec)
		}
	}
	if int(offset) >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeSessionStore) CountBySlot(_ context.Context, slotID string) (int64, error) {
	var n int64
	for _, rec := range f.sessions {
		if rec.SlotID == slotID {
			n++
		}
	}
	return n, nil
}

type fakeStudentStore struct {
	students map[string]*models.Student
}

func newFakeStudentStore(students ...models.Student) *fakeStudentStore {
	f := &fakeStudentStore{students: make(map[string]*models.Student)}
	for i := range students {
		st := students[i]
		f.students[st.ID] = &st
	}
	return f
}

func (f *fakeStudentStore) GetByID(_ context.Context, studentID string) (*models.Student, error) {
	st, ok := f.students[studentID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *st
	return &cp, nil
}

func (f *fakeStudentStore) ListByCohort(_ context.Context, _ pgx.Tx, cohort models.Cohort) ([]models.Student, error) {
	var out []models.Student
	for _, st := range f.students {
		if st.Cohort == cohort && !st.IsGraduated {
			out = append(out, *st)
		}
	}
	return out, nil
}

func (f *fakeStudentStore) BulkUpdateAggregates(_ context.Context, _ pgx.Tx, students []models.Student) error {
	for i := range students {
		st := students[i]
		f.students[st.ID] = &st
	}
	return nil
}

func (f *fakeStudentStore) AdvanceYear(_ context.Context, year int) (int64, error) {
	var affected int64
	for _, st := range f.students {
		if !st.IsGraduated && st.Cohort.Year == year {
			st.Cohort.Year++
			affected++
		}
	}
	return affected, nil
}

func (f *fakeStudentStore) GraduateFinalYear(_ context.Context, finalYear int) (int64, error) {
	var affected int64
	for _, st := range f.students {
		if !st.IsGraduated && st.Cohort.Year == finalYear {
			st.IsGraduated = true
			st.Cohort.Year = models.GraduatedYear
			affected++
		}
	}
	return affected, nil
}

type fakeInstructorStore struct {
	instructors map[string]models.Instructor
}

func newFakeInstructorStore(ids ...string) *fakeInstructorStore {
	f := &fakeInstructorStore{instructors: make(map[string]models.Instructor)}
	for _, id := range ids {
		f.instructors[id] = models.Instructor{ID: id, Name: "Instructor " + id}
	}
	return f
}

func (f *fakeInstructorStore) GetByID(_ context.Context, instructorID string) (*models.Instructor, error) {
	inst, ok := f.instructors[instructorID]
	if !ok {
		return nil, apperrors.ErrInstructorNotFound
	}
	return &inst, nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

type fakeCache struct {
	invalidated    []string
	invalidatedAll int
}

func (f *fakeCache) Get(context.Context, string) (*models.Student, bool) { return nil, false }
func (f *fakeCache) Set(context.Context, *models.Student)                {}
func (f *fakeCache) Invalidate(_ context.Context, studentIDs ...string) {
	f.invalidated = append(f.invalidated, studentIDs...)
}
func (f *fakeCache) InvalidateAll(context.Context) { f.invalidatedAll++ }
