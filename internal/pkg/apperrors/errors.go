package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Infrastructure errors
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Timetable errors
var (
	ErrSlotConflict = errors.New("timetable slot overlaps an existing slot")
	ErrSlotNotFound = errors.New("timetable slot not found")
	ErrInvalidClock = errors.New("invalid clock time")
	ErrInvalidDay   = errors.New("invalid day of week")
)

// Attendance errors
var (
	ErrSessionNotFound    = errors.New("attendance session not found")
	ErrRosterMismatch     = errors.New("attendance submission does not match the cohort roster")
	ErrStudentNotFound    = errors.New("student not found")
	ErrInstructorNotFound = errors.New("instructor not found")
)

// Promotion errors
var (
	ErrInvalidYear = errors.New("year out of range")
)

// NewConflictError creates a new custom error for a slot overlap with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrSlotConflict,
		Message: message,
	}
}

// NewNotFoundError creates a new custom error for missing resources with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// ErrorDetails returns the Details map of an error when it carries one.
func ErrorDetails(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}

// NewSlotConflictError builds the slot-conflict error carrying the colliding
// slot's identity and window. Both the service-level overlap check and the
// storage-level exclusion backstop report conflicts through this shape.
func NewSlotConflictError(slotID, subject, day, startTime, endTime string) *CustomError {
	return NewCustomError(ErrSlotConflict,
		fmt.Sprintf("slot overlaps %s %s-%s on %s", subject, startTime, endTime, day)).
		WithDetails(map[string]interface{}{
			"conflictingSlotId": slotID,
			"subject":           subject,
			"day":               day,
			"startTime":         startTime,
			"endTime":           endTime,
		})
}
