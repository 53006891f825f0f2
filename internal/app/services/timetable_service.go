package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ekinkaya/classtrack/internal/app/models"
	"github.com/ekinkaya/classtrack/internal/app/models/dto"
	"github.com/ekinkaya/classtrack/internal/pkg/apperrors"
	"github.com/ekinkaya/classtrack/internal/pkg/helpers"
	"github.com/ekinkaya/classtrack/internal/pkg/keymutex"
	"github.com/ekinkaya/classtrack/internal/pkg/logger"
)

// TimetableService defines the interface for timetable operations
type TimetableService interface {
	AddSlot(ctx context.Context, instructorID string, req dto.CreateSlotRequest) (*models.TimetableSlot, error)
	RemoveSlot(ctx context.Context, instructorID, slotID string) error
	GetTimetable(ctx context.Context, instructorID string) (*dto.TimetableResponse, error)
	GetCohortDay(ctx context.Context, cohort models.Cohort, day string) ([]models.TimetableSlot, error)
}

// timetableServiceImpl implements the TimetableService interface
type timetableServiceImpl struct {
	slots       SlotStore
	instructors InstructorStore
	locks       *keymutex.KeyMutex
}

// NewTimetableService creates a new timetable service instance
func NewTimetableService(slots SlotStore, instructors InstructorStore) TimetableService {
	return &timetableServiceImpl{
		slots:       slots,
		instructors: instructors,
		locks:       keymutex.New(),
	}
}

func validDay(day string) bool {
	want := helpers.NormalizeDay(day)
	for _, d := range models.Weekdays {
		if helpers.NormalizeDay(d) == want {
			return true
		}
	}
	return false
}

// validateSlotRequest normalizes and checks a slot candidate, returning the
// parsed minute range.
func (s *timetableServiceImpl) validateSlotRequest(req *dto.CreateSlotRequest) (startMin, endMin int, err error) {
	if !validDay(req.Day) {
		return 0, 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidDay, req.Day)
	}

	startMin, err = helpers.ParseClockMinutes(req.StartTime)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}
	endMin, err = helpers.ParseClockMinutes(req.EndTime)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}
	if endMin <= startMin {
		return 0, 0, fmt.Errorf("%w: end time must be after start time", apperrors.ErrValidationFailed)
	}

	if strings.TrimSpace(req.Subject) == "" {
		return 0, 0, fmt.Errorf("%w: subject is required", apperrors.ErrValidationFailed)
	}

	kind := models.SlotKind(req.Kind)
	if req.Kind == "" {
		kind = models.SlotLecture
	}
	switch kind {
	case models.SlotLecture, models.SlotLab, models.SlotLeisure:
	default:
		return 0, 0, fmt.Errorf("%w: unknown slot kind %q", apperrors.ErrValidationFailed, req.Kind)
	}
	req.Kind = string(kind)

	if kind != models.SlotLab && req.LabBatch != nil {
		return 0, 0, fmt.Errorf("%w: lab batch is only valid for LAB slots", apperrors.ErrValidationFailed)
	}

	if req.Room == "" {
		req.Room = models.RoomNone
	}

	return startMin, endMin, nil
}

// AddSlot runs the conflict check against the instructor's current slots and
// persists the candidate when it is clear. The check-then-insert sequence is
// serialized per instructor, and the slot table's exclusion constraint backs
// it up across instances.
func (s *timetableServiceImpl) AddSlot(ctx context.Context, instructorID string, req dto.CreateSlotRequest) (*models.TimetableSlot, error) {
	if _, err := s.instructors.GetByID(ctx, instructorID); err != nil {
		return nil, err
	}

	startMin, endMin, err := s.validateSlotRequest(&req)
	if err != nil {
		return nil, err
	}

	s.locks.Lock(instructorID)
	defer s.locks.Unlock(instructorID)

	existing, err := s.slots.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("error loading instructor slots: %w", err)
	}

	if clash := CheckOverlap(existing, req.Day, startMin, endMin); clash != nil {
		logger.Warn().
			Str("instructorID", instructorID).
			Str("day", req.Day).
			Str("subject", clash.Subject).
			Msg("Slot rejected: overlaps existing slot")
		return nil, apperrors.NewSlotConflictError(clash.ID, clash.Subject, clash.Day, clash.StartTime, clash.EndTime)
	}

	slot := &models.TimetableSlot{
		ID:           uuid.NewString(),
		InstructorID: instructorID,
		Day:          req.Day,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		StartMinutes: startMin,
		EndMinutes:   endMin,
		PeriodIndex:  req.PeriodIndex,
		Cohort:       models.Cohort{Branch: req.Branch, Year: req.Year, Section: req.Section},
		Subject:      req.Subject,
		Room:         req.Room,
		Kind:         models.SlotKind(req.Kind),
		LabBatch:     req.LabBatch,
	}

	if err := s.slots.Insert(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// RemoveSlot removes a slot by identity. Slots are never edited in place;
// changing one is a remove followed by a fresh add.
func (s *timetableServiceImpl) RemoveSlot(ctx context.Context, instructorID, slotID string) error {
	if _, err := s.instructors.GetByID(ctx, instructorID); err != nil {
		return err
	}
	return s.slots.Delete(ctx, instructorID, slotID)
}

// GetTimetable returns the instructor's slots grouped by weekday. The store
// returns the list sorted once by period index; grouping buckets that list in
// order, so relative ordering within a day is preserved without re-sorting.
func (s *timetableServiceImpl) GetTimetable(ctx context.Context, instructorID string) (*dto.TimetableResponse, error) {
	if _, err := s.instructors.GetByID(ctx, instructorID); err != nil {
		return nil, err
	}

	slots, err := s.slots.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("error loading instructor slots: %w", err)
	}

	buckets := make(map[string][]models.TimetableSlot, len(models.Weekdays))
	for _, slot := range slots {
		day := helpers.NormalizeDay(slot.Day)
		buckets[day] = append(buckets[day], slot)
	}

	resp := &dto.TimetableResponse{InstructorID: instructorID}
	for _, day := range models.Weekdays {
		group := dto.TimetableDayGroup{Day: day, Slots: buckets[helpers.NormalizeDay(day)]}
		// Free days serialize as [], not null.
		if group.Slots == nil {
			group.Slots = []models.TimetableSlot{}
		}
		resp.Days = append(resp.Days, group)
	}
	return resp, nil
}

// GetCohortDay returns all slots a cohort attends on one weekday, across all
// instructors.
func (s *timetableServiceImpl) GetCohortDay(ctx context.Context, cohort models.Cohort, day string) ([]models.TimetableSlot, error) {
	if !validDay(day) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidDay, day)
	}
	if cohort.Year < 1 || cohort.Year > 4 {
		return nil, fmt.Errorf("%w: cohort year %d", apperrors.ErrValidationFailed, cohort.Year)
	}
	return s.slots.ListByCohort(ctx, cohort, day)
}
