package services

import (
	"context"
	"fmt"

	"github.com/ekinkaya/classtrack/internal/app/models/dto"
	"github.com/ekinkaya/classtrack/internal/pkg/apperrors"
	"github.com/ekinkaya/classtrack/internal/pkg/logger"
)

// finalYear is the last cohort year; promoting it graduates the students.
const finalYear = 4

// PromotionService defines the interface for the cohort promotion job
type PromotionService interface {
	Promote(ctx context.Context, targetYear int) (*dto.PromoteResponse, error)
}

// promotionServiceImpl implements the PromotionService interface
type promotionServiceImpl struct {
	students StudentStore
	cache    AggregateCache
}

// NewPromotionService creates a new promotion service instance
func NewPromotionService(students StudentStore, cache AggregateCache) PromotionService {
	return &promotionServiceImpl{students: students, cache: cache}
}

// Promote advances every non-graduated student of the target year, or
// graduates them when the target is the final year. A single predicate update
// makes the job idempotent: a re-run matches zero students.
func (s *promotionServiceImpl) Promote(ctx context.Context, targetYear int) (*dto.PromoteResponse, error) {
	if targetYear < 1 || targetYear > finalYear {
		return nil, fmt.Errorf("%w: target year %d", apperrors.ErrInvalidYear, targetYear)
	}

	var (
		affected int64
		err      error
	)
	graduated := targetYear == finalYear
	if graduated {
		affected, err = s.students.GraduateFinalYear(ctx, finalYear)
	} else {
		affected, err = s.students.AdvanceYear(ctx, targetYear)
	}
	if err != nil {
		return nil, err
	}

	if affected > 0 {
		// Cached snapshots carry the cohort year, so drop them wholesale.
		s.cache.InvalidateAll(ctx)
	}

	logger.Info().
		Int("targetYear", targetYear).
		Bool("graduated", graduated).
		Int64("affected", affected).
		Msg("Cohort promotion completed")

	return &dto.PromoteResponse{AffectedCount: affected, Graduated: graduated}, nil
}
