package models

import "time"

// SessionRecord is one dated occurrence of a slot, based on the
// 'attendance_sessions' table. Only the absent students are stored; everyone
// else in the cohort is present by default. The (slot_id, session_date) pair
// is unique, which makes re-marking the same day a correction rather than a
// duplicate.
type SessionRecord struct {
	ID          string    `json:"id" db:"id"`
	SlotID      string    `json:"slotId" db:"slot_id"`
	SessionDate time.Time `json:"sessionDate" db:"session_date"` // midnight UTC
	Cohort      Cohort    `json:"cohort"`                        // denormalized from the slot at creation
	Subject     string    `json:"subject" db:"subject"`
	Absentees   []string  `json:"absentees" db:"absentees"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// AbsenteeSet returns the stored absentees as a set for diffing.
func (r *SessionRecord) AbsenteeSet() map[string]bool {
	set := make(map[string]bool, len(r.Absentees))
	for _, id := range r.Absentees {
		set[id] = true
	}
	return set
}
