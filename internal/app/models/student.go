package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID          string              `json:"id" db:"id"`
	Name        string              `json:"name" db:"name" example:"Asha Rao"`
	Cohort      Cohort              `json:"cohort"`
	IsGraduated bool                `json:"isGraduated" db:"is_graduated"`
	Attendance  AttendanceAggregate `json:"attendance" db:"attendance"`
}

// SubjectAttendance holds the running counters for one subject.
type SubjectAttendance struct {
	TotalClasses   int     `json:"totalClasses" example:"24"`
	PresentClasses int     `json:"presentClasses" example:"21"`
	Percentage     float64 `json:"percentage" example:"87.5"`
}

// AttendanceAggregate is the derived per-subject and global attendance state
// owned by a student. The summary is always the component-wise sum of the
// subject entries; Recompute rebuilds it from parts instead of patching a
// running total.
type AttendanceAggregate struct {
	Subjects map[string]SubjectAttendance `json:"subjects"`
	Summary  SubjectAttendance            `json:"summary"`
}

// NewAttendanceAggregate returns an empty aggregate with the zero-class
// percentage convention applied.
func NewAttendanceAggregate() AttendanceAggregate {
	agg := AttendanceAggregate{Subjects: make(map[string]SubjectAttendance)}
	agg.Recompute()
	return agg
}

// percentage is 100 when no classes have been held yet.
func percentage(present, total int) float64 {
	if total == 0 {
		return 100
	}
	return float64(present) / float64(total) * 100
}

// Apply updates the subject entry for one mark-attendance outcome. On a first
// mark the class counts toward the total; on a correction only the presence
// flips. The global summary is rebuilt afterwards.
func (a *AttendanceAggregate) Apply(subject string, wasAbsent, isAbsent, firstMark bool) {
	if a.Subjects == nil {
		a.Subjects = make(map[string]SubjectAttendance)
	}
	entry := a.Subjects[subject]

	if firstMark {
		entry.TotalClasses++
		if !isAbsent {
			entry.PresentClasses++
		}
	} else {
		switch {
		case wasAbsent && !isAbsent:
			entry.PresentClasses++
		case !wasAbsent && isAbsent:
			entry.PresentClasses--
		}
	}

	entry.Percentage = percentage(entry.PresentClasses, entry.TotalClasses)
	a.Subjects[subject] = entry
	a.Recompute()
}

// Recompute rebuilds the global summary as the exact sum of the subject
// entries.
func (a *AttendanceAggregate) Recompute() {
	var total, present int
	for _, entry := range a.Subjects {
		total += entry.TotalClasses
		present += entry.PresentClasses
	}
	a.Summary = SubjectAttendance{
		TotalClasses:   total,
		PresentClasses: present,
		Percentage:     percentage(present, total),
	}
}
