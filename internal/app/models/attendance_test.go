package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAttendanceAggregateZeroClasses(t *testing.T) {
	agg := NewAttendanceAggregate()

	assert.Empty(t, agg.Subjects)
	assert.Equal(t, 0, agg.Summary.TotalClasses)
	assert.Equal(t, float64(100), agg.Summary.Percentage)
}

func TestApplyFirstMark(t *testing.T) {
	agg := NewAttendanceAggregate()

	agg.Apply("Physics", false, false, true) // present
	agg.Apply("Physics", false, true, true)  // absent
	agg.Apply("Chemistry", false, false, true)

	phy := agg.Subjects["Physics"]
	assert.Equal(t, 2, phy.TotalClasses)
	assert.Equal(t, 1, phy.PresentClasses)
	assert.Equal(t, float64(50), phy.Percentage)

	chem := agg.Subjects["Chemistry"]
	assert.Equal(t, 1, chem.TotalClasses)
	assert.Equal(t, 1, chem.PresentClasses)

	assert.Equal(t, 3, agg.Summary.TotalClasses)
	assert.Equal(t, 2, agg.Summary.PresentClasses)
}

func TestApplyCorrectionFlipsPresenceOnly(t *testing.T) {
	agg := NewAttendanceAggregate()
	agg.Apply("Physics", false, true, true) // first mark: absent

	// Correction: absent -> present. Total must not grow.
	agg.Apply("Physics", true, false, false)
	phy := agg.Subjects["Physics"]
	assert.Equal(t, 1, phy.TotalClasses)
	assert.Equal(t, 1, phy.PresentClasses)
	assert.Equal(t, float64(100), phy.Percentage)

	// Correction back: present -> absent.
	agg.Apply("Physics", false, true, false)
	phy = agg.Subjects["Physics"]
	assert.Equal(t, 1, phy.TotalClasses)
	assert.Equal(t, 0, phy.PresentClasses)
	assert.Equal(t, float64(0), phy.Percentage)
}

func TestSummaryIsSumOfSubjects(t *testing.T) {
	agg := NewAttendanceAggregate()
	agg.Apply("Physics", false, false, true)
	agg.Apply("Physics", false, true, true)
	agg.Apply("Chemistry", false, false, true)
	agg.Apply("Math", false, true, true)

	var total, present int
	for _, entry := range agg.Subjects {
		total += entry.TotalClasses
		present += entry.PresentClasses
	}
	assert.Equal(t, total, agg.Summary.TotalClasses)
	assert.Equal(t, present, agg.Summary.PresentClasses)
}

func TestSlotOverlapsHalfOpen(t *testing.T) {
	slot := TimetableSlot{StartMinutes: 540, EndMinutes: 600} // 09:00-10:00

	assert.True(t, slot.Overlaps(570, 630))  // straddles the end
	assert.True(t, slot.Overlaps(500, 550))  // straddles the start
	assert.True(t, slot.Overlaps(540, 600))  // identical
	assert.True(t, slot.Overlaps(550, 560))  // contained
	assert.True(t, slot.Overlaps(500, 700))  // containing
	assert.False(t, slot.Overlaps(600, 660)) // back to back after
	assert.False(t, slot.Overlaps(480, 540)) // back to back before
	assert.False(t, slot.Overlaps(700, 760))
}
