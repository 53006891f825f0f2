package helpers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ekinkaya/classtrack/internal/pkg/apperrors"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseClockMinutes converts a 12-hour wall-clock string such as "09:30 AM" into
// minutes since midnight. Hour 12 wraps to 0 before the PM offset is applied, so
// "12:00 AM" is 0 and "12:30 PM" is 750.
func ParseClockMinutes(clock string) (int, error) {
	parts := strings.Fields(strings.TrimSpace(clock))
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidClock, clock)
	}

	meridiem := strings.ToUpper(parts[1])
	if meridiem != "AM" && meridiem != "PM" {
		return 0, fmt.Errorf("%w: unknown meridiem in %q", apperrors.ErrInvalidClock, clock)
	}

	hm := strings.Split(parts[0], ":")
	if len(hm) != 2 {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidClock, clock)
	}

	hour, err := strconv.Atoi(hm[0])
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("%w: hour in %q", apperrors.ErrInvalidClock, clock)
	}
	minute, err := strconv.Atoi(hm[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: minute in %q", apperrors.ErrInvalidClock, clock)
	}

	if hour == 12 {
		hour = 0
	}
	if meridiem == "PM" {
		hour += 12
	}

	return hour*60 + minute, nil
}

// NormalizeDate truncates a timestamp to midnight UTC. Attendance sessions are
// keyed by calendar day, so two submissions on the same day must collide.
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalizeDay canonicalizes a weekday name for comparison: trimmed, lower-cased.
func NormalizeDay(day string) string {
	return strings.ToLower(strings.TrimSpace(day))
}
