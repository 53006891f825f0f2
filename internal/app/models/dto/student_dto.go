package dto

import "github.com/ekinkaya/classtrack/internal/app/models"

// StudentAttendanceResponse is the student-facing view of the derived
// attendance counters.
type StudentAttendanceResponse struct {
	StudentID string                              `json:"studentId"`
	Name      string                              `json:"name"`
	Cohort    models.Cohort                       `json:"cohort"`
	Subjects  map[string]models.SubjectAttendance `json:"subjects"`
	Summary   models.SubjectAttendance            `json:"summary"`
}

// CohortDayResponse lists the slots a cohort attends on one weekday, across
// all instructors.
type CohortDayResponse struct {
	Cohort models.Cohort          `json:"cohort"`
	Day    string                 `json:"day"`
	Slots  []models.TimetableSlot `json:"slots"`
}
