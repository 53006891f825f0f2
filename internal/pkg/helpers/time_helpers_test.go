package helpers

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekinkaya/classtrack/internal/pkg/apperrors"
)

func TestParseClockMinutes(t *testing.T) {
	tests := []struct {
		clock   string
		want    int
		wantErr bool
	}{
		{clock: "12:00 AM", want: 0},
		{clock: "12:59 AM", want: 59},
		{clock: "01:00 AM", want: 60},
		{clock: "09:00 AM", want: 540},
		{clock: "11:59 AM", want: 719},
		{clock: "12:00 PM", want: 720},
		{clock: "12:30 PM", want: 750},
		{clock: "01:15 PM", want: 795},
		{clock: "11:59 PM", want: 1439},
		{clock: "9:05 am", want: 545},
		{clock: "  10:00 PM ", want: 1320},
		{clock: "", wantErr: true},
		{clock: "09:00", wantErr: true},
		{clock: "09:00 XM", wantErr: true},
		{clock: "13:00 PM", wantErr: true},
		{clock: "00:30 AM", wantErr: true},
		{clock: "09:60 AM", wantErr: true},
		{clock: "0900 AM", wantErr: true},
		{clock: "nine AM", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			got, err := ParseClockMinutes(tt.clock)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrInvalidClock))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	in := time.Date(2026, 3, 2, 1, 30, 0, 0, loc) // 2026-03-01 22:30 UTC
	got := NormalizeDate(in)

	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), got)

	// Two timestamps on the same UTC day collapse to the same key.
	other := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, got, NormalizeDate(other))
}

func TestNormalizeDay(t *testing.T) {
	assert.Equal(t, "monday", NormalizeDay("  Monday "))
	assert.Equal(t, "saturday", NormalizeDay("SATURDAY"))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 5*time.Minute, ParseDuration("5m", time.Second))
	assert.Equal(t, time.Second, ParseDuration("bogus", time.Second))
}
