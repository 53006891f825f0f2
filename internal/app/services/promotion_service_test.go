package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekinkaya/classtrack/internal/app/models"
	"github.com/ekinkaya/classtrack/internal/pkg/apperrors"
)

func cohortStudent(id string, year int) models.Student {
	return models.Student{
		ID:         id,
		Name:       "Student " + id,
		Cohort:     models.Cohort{Branch: "CSE", Year: year, Section: "A"},
		Attendance: models.NewAttendanceAggregate(),
	}
}

func TestPromoteAdvancesYear(t *testing.T) {
	students := newFakeStudentStore(
		cohortStudent("S1", 2),
		cohortStudent("S2", 2),
		cohortStudent("S3", 3),
	)
	cache := &fakeCache{}
	svc := NewPromotionService(students, cache)

	resp, err := svc.Promote(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.AffectedCount)
	assert.False(t, resp.Graduated)

	s1, _ := students.GetByID(context.Background(), "S1")
	assert.Equal(t, 3, s1.Cohort.Year)
	s3, _ := students.GetByID(context.Background(), "S3")
	assert.Equal(t, 3, s3.Cohort.Year)

	assert.Equal(t, 1, cache.invalidatedAll)
}

func TestPromoteGraduatesFinalYear(t *testing.T) {
	students := newFakeStudentStore(
		cohortStudent("S1", 4),
		cohortStudent("S2", 1),
	)
	cache := &fakeCache{}
	svc := NewPromotionService(students, cache)

	resp, err := svc.Promote(context.Background(), 4)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.AffectedCount)
	assert.True(t, resp.Graduated)

	s1, _ := students.GetByID(context.Background(), "S1")
	assert.True(t, s1.IsGraduated)
	assert.Equal(t, models.GraduatedYear, s1.Cohort.Year)
}

func TestPromoteIsIdempotent(t *testing.T) {
	students := newFakeStudentStore(cohortStudent("S1", 4))
	cache := &fakeCache{}
	svc := NewPromotionService(students, cache)

	first, err := svc.Promote(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.AffectedCount)

	// Re-run matches nobody and leaves the cache alone.
	second, err := svc.Promote(context.Background(), 4)
	require.NoError(t, err)
	assert.Zero(t, second.AffectedCount)
	assert.Equal(t, 1, cache.invalidatedAll)
}

func TestPromoteRejectsBadYear(t *testing.T) {
	svc := NewPromotionService(newFakeStudentStore(), &fakeCache{})

	for _, year := range []int{0, -1, 5, 99} {
		_, err := svc.Promote(context.Background(), year)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidYear), "year %d", year)
	}
}
