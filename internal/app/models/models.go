package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent    RoleType = "STUDENT"
	RoleInstructor RoleType = "INSTRUCTOR"
	RoleAdmin      RoleType = "ADMIN"
)

// SlotKind classifies a timetable slot
type SlotKind string

const (
	SlotLecture SlotKind = "LECTURE"
	SlotLab     SlotKind = "LAB"
	SlotLeisure SlotKind = "LEISURE"
)

// Weekdays the timetable covers, in display order. Sunday is not scheduled.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// GraduatedYear is the terminal year marker set by the promotion job.
const GraduatedYear = 5

// RoomNone is the room sentinel for slots without a lecture hall.
const RoomNone = "N/A"
