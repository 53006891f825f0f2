package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlotConflictError(t *testing.T) {
	err := NewSlotConflictError("slot-1", "Physics", "Monday", "09:00 AM", "10:00 AM")

	assert.True(t, errors.Is(err, ErrSlotConflict))
	assert.Contains(t, err.Error(), "Physics")
	assert.Contains(t, err.Error(), "09:00 AM-10:00 AM")

	details := ErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, "slot-1", details["conflictingSlotId"])
	assert.Equal(t, "Physics", details["subject"])
	assert.Equal(t, "Monday", details["day"])
	assert.Equal(t, "09:00 AM", details["startTime"])
	assert.Equal(t, "10:00 AM", details["endTime"])
}

func TestCustomErrorUnwrap(t *testing.T) {
	err := NewCustomError(ErrRosterMismatch, "bad roster").
		WithDetails(map[string]interface{}{"missingStudentIds": []string{"S2"}})

	assert.True(t, errors.Is(err, ErrRosterMismatch))
	assert.Equal(t, []string{"S2"}, ErrorDetails(err)["missingStudentIds"])
}
