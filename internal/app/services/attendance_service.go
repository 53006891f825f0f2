package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ekinkaya/classtrack/internal/app/models"
	"github.com/ekinkaya/classtrack/internal/app/models/dto"
	"github.com/ekinkaya/classtrack/internal/pkg/apperrors"
	"github.com/ekinkaya/classtrack/internal/pkg/helpers"
	"github.com/ekinkaya/classtrack/internal/pkg/keymutex"
	"github.com/ekinkaya/classtrack/internal/pkg/logger"
)

// AttendanceService defines the interface for attendance operations
type AttendanceService interface {
	MarkAttendance(ctx context.Context, slotID string, date time.Time, entries []dto.AttendanceEntry) (*dto.MarkAttendanceResponse, error)
	GetStudentAttendance(ctx context.Context, studentID string) (*dto.StudentAttendanceResponse, error)
	ListSessions(ctx context.Context, slotID string, page, size int) (*dto.SessionListResponse, error)
}

// attendanceServiceImpl implements the AttendanceService interface
type attendanceServiceImpl struct {
	slots    SlotStore
	sessions SessionStore
	students StudentStore
	tx       TxRunner
	cache    AggregateCache
	locks    *keymutex.KeyMutex
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(slots SlotStore, sessions SessionStore, students StudentStore, tx TxRunner, cache AggregateCache) AttendanceService {
	return &attendanceServiceImpl{
		slots:    slots,
		sessions: sessions,
		students: students,
		tx:       tx,
		cache:    cache,
		locks:    keymutex.New(),
	}
}

// validateRoster checks that the submission enumerates every cohort member
// exactly once, and nobody outside the cohort. It returns the submitted
// absentee set.
func validateRoster(roster []models.Student, entries []dto.AttendanceEntry) (map[string]bool, error) {
	inCohort := make(map[string]bool, len(roster))
	for _, st := range roster {
		inCohort[st.ID] = true
	}

	seen := make(map[string]bool, len(entries))
	absent := make(map[string]bool)
	var unknown, duplicated []string
	for _, e := range entries {
		if !inCohort[e.StudentID] {
			unknown = append(unknown, e.StudentID)
			continue
		}
		if seen[e.StudentID] {
			duplicated = append(duplicated, e.StudentID)
			continue
		}
		seen[e.StudentID] = true
		if e.Status == dto.StatusAbsent {
			absent[e.StudentID] = true
		}
	}

	var missing []string
	for _, st := range roster {
		if !seen[st.ID] {
			missing = append(missing, st.ID)
		}
	}

	if len(unknown) > 0 || len(duplicated) > 0 || len(missing) > 0 {
		sort.Strings(unknown)
		sort.Strings(duplicated)
		sort.Strings(missing)
		return nil, apperrors.NewCustomError(apperrors.ErrRosterMismatch,
			"attendance submission must list every cohort member exactly once").
			WithDetails(map[string]interface{}{
				"unknownStudentIds":   unknown,
				"duplicateStudentIds": duplicated,
				"missingStudentIds":   missing,
			})
	}
	return absent, nil
}

// MarkAttendance records or corrects one session of a slot. The whole
// operation, session upsert plus every affected student's aggregate update,
// runs as one transaction serialized per (slot, date).
func (s *attendanceServiceImpl) MarkAttendance(ctx context.Context, slotID string, date time.Time, entries []dto.AttendanceEntry) (*dto.MarkAttendanceResponse, error) {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: empty attendance submission", apperrors.ErrValidationFailed)
	}

	day := helpers.NormalizeDate(date)
	lockKey := slotID + "|" + day.Format("2006-01-02")
	s.locks.Lock(lockKey)
	defer s.locks.Unlock(lockKey)

	var (
		created   bool
		sessionID string
		touched   []string
	)

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		roster, err := s.students.ListByCohort(ctx, tx, slot.Cohort)
		if err != nil {
			return err
		}
		if len(roster) == 0 {
			return fmt.Errorf("%w: no students in cohort %s-%d-%s",
				apperrors.ErrValidationFailed, slot.Cohort.Branch, slot.Cohort.Year, slot.Cohort.Section)
		}

		newAbsent, err := validateRoster(roster, entries)
		if err != nil {
			return err
		}

		existing, err := s.sessions.Find(ctx, tx, slotID, day)
		if err != nil {
			return err
		}

		oldAbsent := map[string]bool{}
		firstMark := existing == nil
		if firstMark {
			rec := &models.SessionRecord{
				ID:          uuid.NewString(),
				SlotID:      slotID,
				SessionDate: day,
				Cohort:      slot.Cohort,
				Subject:     slot.Subject,
				Absentees:   setToSlice(newAbsent),
			}
			if err := s.sessions.Create(ctx, tx, rec); err != nil {
				// Lost a cross-instance race on the (slot, date) uniqueness
				// constraint: fall back to treating this call as a correction.
				if errors.Is(err, apperrors.ErrConflict) {
					existing, err = s.sessions.Find(ctx, tx, slotID, day)
					if err != nil {
						return err
					}
					if existing == nil {
						return fmt.Errorf("%w: session vanished after conflicting insert", apperrors.ErrStorageUnavailable)
					}
					firstMark = false
				} else {
					return err
				}
			} else {
				sessionID = rec.ID
			}
		}
		if !firstMark {
			oldAbsent = existing.AbsenteeSet()
			sessionID = existing.ID
			if err := s.sessions.ReplaceAbsentees(ctx, tx, existing.ID, setToSlice(newAbsent)); err != nil {
				return err
			}
		}
		created = firstMark

		// Apply the diff per student. On a first mark every cohort member is
		// touched; on a correction only the students whose presence flipped.
		var updated []models.Student
		for i := range roster {
			st := &roster[i]
			wasAbsent := oldAbsent[st.ID]
			isAbsent := newAbsent[st.ID]
			if !firstMark && wasAbsent == isAbsent {
				continue
			}
			st.Attendance.Apply(slot.Subject, wasAbsent, isAbsent, firstMark)
			updated = append(updated, *st)
			touched = append(touched, st.ID)
		}

		return s.students.BulkUpdateAggregates(ctx, tx, updated)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, touched...)

	logger.Info().
		Str("slotID", slotID).
		Str("date", day.Format("2006-01-02")).
		Bool("created", created).
		Int("studentsTouched", len(touched)).
		Msg("Attendance marked")

	return &dto.MarkAttendanceResponse{
		Created:     created,
		SessionID:   sessionID,
		SessionDate: day.Format("2006-01-02"),
	}, nil
}

// GetStudentAttendance returns the derived per-subject counters and global
// summary for one student, served from the cache when fresh.
func (s *attendanceServiceImpl) GetStudentAttendance(ctx context.Context, studentID string) (*dto.StudentAttendanceResponse, error) {
	st, ok := s.cache.Get(ctx, studentID)
	if !ok {
		var err error
		st, err = s.students.GetByID(ctx, studentID)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, st)
	}

	return &dto.StudentAttendanceResponse{
		StudentID: st.ID,
		Name:      st.Name,
		Cohort:    st.Cohort,
		Subjects:  st.Attendance.Subjects,
		Summary:   st.Attendance.Summary,
	}, nil
}

// ListSessions returns one page of the marked session history of a slot.
func (s *attendanceServiceImpl) ListSessions(ctx context.Context, slotID string, page, size int) (*dto.SessionListResponse, error) {
	if _, err := s.slots.GetByID(ctx, slotID); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	records, err := s.sessions.ListBySlot(ctx, slotID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.sessions.CountBySlot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.SessionSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, dto.SessionSummary{
			SessionID:     rec.ID,
			SessionDate:   rec.SessionDate.Format("2006-01-02"),
			AbsenteeTotal: len(rec.Absentees),
		})
	}
	return &dto.SessionListResponse{
		Sessions:   summaries,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

func setToSlice(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
