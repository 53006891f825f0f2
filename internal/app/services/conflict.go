package services

import (
	"github.com/ekinkaya/classtrack/internal/app/models"
	"github.com/ekinkaya/classtrack/internal/pkg/helpers"
)

// CheckOverlap scans an instructor's existing slots for one that collides with
// the candidate [startMin, endMin) range on the given day. Day comparison is
// trimmed and case-insensitive; ranges are half-open, so a slot ending at
// 10:00 and one starting at 10:00 do not collide. The first conflicting slot
// in stored order is returned, or nil.
func CheckOverlap(existing []models.TimetableSlot, day string, startMin, endMin int) *models.TimetableSlot {
	want := helpers.NormalizeDay(day)
	for i := range existing {
		slot := &existing[i]
		if helpers.NormalizeDay(slot.Day) != want {
			continue
		}
		if slot.Overlaps(startMin, endMin) {
			return slot
		}
	}
	return nil
}
