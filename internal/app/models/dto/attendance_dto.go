package dto

// AttendanceStatus is the explicit per-student status in a submission.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "PRESENT"
	StatusAbsent  AttendanceStatus = "ABSENT"
)

// AttendanceEntry is one student's status in a mark-attendance submission.
// Every cohort member must appear exactly once.
type AttendanceEntry struct {
	StudentID string           `json:"studentId" binding:"required"`
	Status    AttendanceStatus `json:"status" binding:"required,oneof=PRESENT ABSENT"`
}

// MarkAttendanceRequest is the payload for marking one session of a slot.
type MarkAttendanceRequest struct {
	Date    string            `json:"date" binding:"required" example:"2026-03-02"` // YYYY-MM-DD
	Entries []AttendanceEntry `json:"entries" binding:"required,dive"`
}

// MarkAttendanceResponse reports whether the call created a new session or
// corrected an existing one.
type MarkAttendanceResponse struct {
	Created     bool   `json:"created"`
	SessionID   string `json:"sessionId"`
	SessionDate string `json:"sessionDate"`
}

// SessionSummary is one row in a slot's session history.
type SessionSummary struct {
	SessionID     string `json:"sessionId"`
	SessionDate   string `json:"sessionDate"`
	AbsenteeTotal int    `json:"absenteeTotal"`
}

// SessionListResponse is a page of a slot's session history.
type SessionListResponse struct {
	Sessions   []SessionSummary `json:"sessions"`
	Pagination PaginationInfo   `json:"pagination"`
}
