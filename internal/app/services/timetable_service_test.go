package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekinkaya/classtrack/internal/app/models"
	"github.com/ekinkaya/classtrack/internal/app/models/dto"
	"github.com/ekinkaya/classtrack/internal/pkg/apperrors"
)

func newTimetableFixture() (TimetableService, *fakeSlotStore) {
	slots := &fakeSlotStore{}
	svc := NewTimetableService(slots, newFakeInstructorStore("INST-1"))
	return svc, slots
}

func physicsRequest() dto.CreateSlotRequest {
	return dto.CreateSlotRequest{
		Day:       "Monday",
		StartTime: "09:00 AM",
		EndTime:   "10:00 AM",
		Branch:    "CSE",
		Year:      2,
		Section:   "A",
		Subject:   "Physics",
		Room:      "B-204",
	}
}

func TestAddSlot(t *testing.T) {
	svc, slots := newTimetableFixture()

	slot, err := svc.AddSlot(context.Background(), "INST-1", physicsRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, slot.ID)
	assert.Equal(t, "INST-1", slot.InstructorID)
	assert.Equal(t, 540, slot.StartMinutes)
	assert.Equal(t, 600, slot.EndMinutes)
	assert.Equal(t, models.SlotLecture, slot.Kind)
	assert.Len(t, slots.slots, 1)
}

func TestAddSlotRejectsOverlap(t *testing.T) {
	svc, slots := newTimetableFixture()

	_, err := svc.AddSlot(context.Background(), "INST-1", physicsRequest())
	require.NoError(t, err)

	req := physicsRequest()
	req.Subject = "Chemistry"
	req.StartTime = "09:30 AM"
	req.EndTime = "10:30 AM"
	_, err = svc.AddSlot(context.Background(), "INST-1", req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrSlotConflict))

	var ce *apperrors.CustomError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "Physics", ce.Details["subject"])

	assert.Len(t, slots.slots, 1)
}

func TestAddSlotBackToBackAllowed(t *testing.T) {
	svc, _ := newTimetableFixture()

	_, err := svc.AddSlot(context.Background(), "INST-1", physicsRequest())
	require.NoError(t, err)

	req := physicsRequest()
	req.Subject = "Chemistry"
	req.StartTime = "10:00 AM"
	req.EndTime = "11:00 AM"
	_, err = svc.AddSlot(context.Background(), "INST-1", req)
	assert.NoError(t, err)
}

func TestAddSlotValidation(t *testing.T) {
	svc, _ := newTimetableFixture()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*dto.CreateSlotRequest)
		wantErr error
	}{
		{
			name:    "unknown day",
			mutate:  func(r *dto.CreateSlotRequest) { r.Day = "Sunday" },
			wantErr: apperrors.ErrInvalidDay,
		},
		{
			name:    "bad clock",
			mutate:  func(r *dto.CreateSlotRequest) { r.StartTime = "25:00 AM" },
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name: "end before start",
			mutate: func(r *dto.CreateSlotRequest) {
				r.StartTime = "10:00 AM"
				r.EndTime = "09:00 AM"
			},
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "zero length",
			mutate:  func(r *dto.CreateSlotRequest) { r.EndTime = r.StartTime },
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "blank subject",
			mutate:  func(r *dto.CreateSlotRequest) { r.Subject = "  " },
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name: "lab batch on lecture",
			mutate: func(r *dto.CreateSlotRequest) {
				batch := 1
				r.LabBatch = &batch
			},
			wantErr: apperrors.ErrValidationFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := physicsRequest()
			tt.mutate(&req)
			_, err := svc.AddSlot(ctx, "INST-1", req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestAddSlotDefaults(t *testing.T) {
	svc, _ := newTimetableFixture()

	req := physicsRequest()
	req.Room = ""
	req.Kind = ""
	slot, err := svc.AddSlot(context.Background(), "INST-1", req)
	require.NoError(t, err)

	assert.Equal(t, models.RoomNone, slot.Room)
	assert.Equal(t, models.SlotLecture, slot.Kind)
}

func TestAddSlotUnknownInstructor(t *testing.T) {
	svc, _ := newTimetableFixture()

	_, err := svc.AddSlot(context.Background(), "INST-404", physicsRequest())
	assert.True(t, errors.Is(err, apperrors.ErrInstructorNotFound))
}

func TestRemoveSlot(t *testing.T) {
	svc, slots := newTimetableFixture()

	slot, err := svc.AddSlot(context.Background(), "INST-1", physicsRequest())
	require.NoError(t, err)

	require.NoError(t, svc.RemoveSlot(context.Background(), "INST-1", slot.ID))
	assert.Empty(t, slots.slots)

	err = svc.RemoveSlot(context.Background(), "INST-1", slot.ID)
	assert.True(t, errors.Is(err, apperrors.ErrSlotNotFound))
}

func TestGetTimetableGroupsByDay(t *testing.T) {
	svc, _ := newTimetableFixture()
	ctx := context.Background()

	mon := physicsRequest()
	_, err := svc.AddSlot(ctx, "INST-1", mon)
	require.NoError(t, err)

	tue := physicsRequest()
	tue.Day = "Tuesday"
	tue.Subject = "Chemistry"
	_, err = svc.AddSlot(ctx, "INST-1", tue)
	require.NoError(t, err)

	resp, err := svc.GetTimetable(ctx, "INST-1")
	require.NoError(t, err)

	require.Len(t, resp.Days, len(models.Weekdays))
	assert.Equal(t, "Monday", resp.Days[0].Day)
	require.Len(t, resp.Days[0].Slots, 1)
	assert.Equal(t, "Physics", resp.Days[0].Slots[0].Subject)
	require.Len(t, resp.Days[1].Slots, 1)
	assert.Equal(t, "Chemistry", resp.Days[1].Slots[0].Subject)

	// Free days carry an empty slice so they serialize as [].
	for _, group := range resp.Days[2:] {
		assert.NotNil(t, group.Slots)
		assert.Empty(t, group.Slots)
	}
}

func TestGetCohortDay(t *testing.T) {
	svc, _ := newTimetableFixture()
	ctx := context.Background()

	_, err := svc.AddSlot(ctx, "INST-1", physicsRequest())
	require.NoError(t, err)

	cohort := models.Cohort{Branch: "CSE", Year: 2, Section: "A"}
	slots, err := svc.GetCohortDay(ctx, cohort, "Monday")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "Physics", slots[0].Subject)

	slots, err = svc.GetCohortDay(ctx, cohort, "Tuesday")
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = svc.GetCohortDay(ctx, cohort, "Sunday")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidDay))

	cohort.Year = 7
	_, err = svc.GetCohortDay(ctx, cohort, "Monday")
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}
