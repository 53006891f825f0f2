package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekinkaya/classtrack/internal/app/models"
)

func slotOn(day string, startMin, endMin int, subject string) models.TimetableSlot {
	return models.TimetableSlot{
		ID:           subject + "-" + day,
		Day:          day,
		StartMinutes: startMin,
		EndMinutes:   endMin,
		Subject:      subject,
	}
}

func TestCheckOverlap(t *testing.T) {
	existing := []models.TimetableSlot{
		slotOn("Monday", 540, 600, "Physics"),   // 09:00-10:00
		slotOn("Monday", 600, 660, "Chemistry"), // 10:00-11:00
		slotOn("Tuesday", 540, 600, "Math"),     // same window, other day
	}

	// 09:30-10:30 Monday collides with Physics first.
	clash := CheckOverlap(existing, "Monday", 570, 630)
	require.NotNil(t, clash)
	assert.Equal(t, "Physics", clash.Subject)

	// Back to back with Chemistry: 11:00 start is clear.
	assert.Nil(t, CheckOverlap(existing, "Monday", 660, 720))

	// Same window on a free day is clear.
	assert.Nil(t, CheckOverlap(existing, "Wednesday", 540, 600))

	// Day comparison ignores case and padding.
	clash = CheckOverlap(existing, " monday ", 555, 565)
	require.NotNil(t, clash)
	assert.Equal(t, "Physics", clash.Subject)

	// Exactly matching an existing window collides.
	clash = CheckOverlap(existing, "Tuesday", 540, 600)
	require.NotNil(t, clash)
	assert.Equal(t, "Math", clash.Subject)
}

func TestCheckOverlapEmpty(t *testing.T) {
	assert.Nil(t, CheckOverlap(nil, "Monday", 540, 600))
}
