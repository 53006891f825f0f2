package models

import "time"

// Cohort identifies the group of students sharing a slot.
type Cohort struct {
	Branch  string `json:"branch" db:"branch" example:"CSE"`
	Year    int    `json:"year" db:"year" example:"2"`
	Section string `json:"section" db:"section" example:"A"`
}

// TimetableSlot defines a recurring weekly time block owned by one instructor,
// based on the 'timetable_slots' table. Slots are immutable once created;
// edits are remove + re-add.
type TimetableSlot struct {
	ID           string    `json:"id" db:"id" example:"8e9cf6b2-6f3e-4f1a-9f0f-1f4a1f6f2a10"`
	InstructorID string    `json:"instructorId" db:"instructor_id"`
	Day          string    `json:"day" db:"day" example:"Monday"`
	StartTime    string    `json:"startTime" db:"start_time" example:"09:00 AM"` // wall clock, for display
	EndTime      string    `json:"endTime" db:"end_time" example:"10:00 AM"`
	StartMinutes int       `json:"-" db:"start_minutes"` // minutes since midnight, for overlap checks
	EndMinutes   int       `json:"-" db:"end_minutes"`
	PeriodIndex  int       `json:"periodIndex" db:"period_index" example:"1"`
	Cohort       Cohort    `json:"cohort"`
	Subject      string    `json:"subject" db:"subject" example:"Physics"`
	Room         string    `json:"room" db:"room" example:"B-204"`
	Kind         SlotKind  `json:"kind" db:"kind" example:"LECTURE"`
	LabBatch     *int      `json:"labBatch,omitempty" db:"lab_batch"` // 1 or 2, only for LAB slots
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Overlaps reports whether the slot's [start,end) range intersects the given
// range on the same day. Back-to-back slots do not overlap.
func (s *TimetableSlot) Overlaps(startMin, endMin int) bool {
	return s.StartMinutes < endMin && startMin < s.EndMinutes
}
