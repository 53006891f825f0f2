package dto

import "github.com/ekinkaya/classtrack/internal/app/models"

// CreateSlotRequest is the payload for adding a timetable slot.
type CreateSlotRequest struct {
	Day         string `json:"day" binding:"required" example:"Monday"`
	StartTime   string `json:"startTime" binding:"required" example:"09:00 AM"`
	EndTime     string `json:"endTime" binding:"required" example:"10:00 AM"`
	PeriodIndex int    `json:"periodIndex" binding:"min=0" example:"1"`
	Branch      string `json:"branch" binding:"required" example:"CSE"`
	Year        int    `json:"year" binding:"required,min=1,max=4" example:"2"`
	Section     string `json:"section" binding:"required" example:"A"`
	Subject     string `json:"subject" binding:"required" example:"Physics"`
	Room        string `json:"room" example:"B-204"`
	Kind        string `json:"kind" binding:"omitempty,oneof=LECTURE LAB LEISURE" example:"LECTURE"`
	LabBatch    *int   `json:"labBatch,omitempty" binding:"omitempty,oneof=1 2"`
}

// TimetableDayGroup is one weekday bucket of an instructor's timetable.
type TimetableDayGroup struct {
	Day   string                 `json:"day" example:"Monday"`
	Slots []models.TimetableSlot `json:"slots"`
}

// TimetableResponse is the instructor's full weekly timetable grouped by day.
type TimetableResponse struct {
	InstructorID string              `json:"instructorId"`
	Days         []TimetableDayGroup `json:"days"`
}
