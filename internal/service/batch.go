package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/tastypick/recipe-recommender/internal/domain"
)

const (
	batchConcurrency = 10
	batchRankLimit   = 10
)

// RankBatch generates recommendations for one page of users with a bounded
// worker pool. Per-user failures are captured in the result row, they do not
// fail the batch.
func (s *Service) RankBatch(ctx context.Context, page, limit int) (*domain.BatchResponse, error) {
	start := time.Now()

	userIDs, err := s.prefs.ListUserIDsPaginated(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch user ids: %w", err)
	}
	totalUsers, err := s.prefs.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	results := make([]domain.BatchUserResult, len(userIDs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, batchConcurrency) // semaphore

	for i, userID := range userIDs {
		wg.Add(1)
		go func(idx int, uid int64) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			results[idx] = s.rankUserForBatch(ctx, uid)
		}(i, userID)
	}
	wg.Wait()

	successCount := 0
	failedCount := 0
	for _, r := range results {
		if r.Status == domain.StatusSuccess {
			successCount++
		} else {
			failedCount++
		}
	}

	return &domain.BatchResponse{
		Page:       page,
		Limit:      limit,
		TotalUsers: totalUsers,
		Results:    results,
		Summary: domain.BatchSummary{
			SuccessCount:     successCount,
			FailedCount:      failedCount,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
		Metadata: domain.BatchMeta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

func (s *Service) rankUserForBatch(ctx context.Context, userID int64) domain.BatchUserResult {
	recs, err := s.Rank(ctx, userID, batchRankLimit)
	if err != nil {
		log.Printf("[service] batch: failed for user %d: %v", userID, err)
		code, msg := categorizeError(err)
		return domain.BatchUserResult{
			UserID:  userID,
			Status:  domain.StatusFailed,
			Error:   code,
			Message: msg,
		}
	}
	return domain.BatchUserResult{
		UserID:          userID,
		Recommendations: recs,
		Status:          domain.StatusSuccess,
	}
}

func categorizeError(err error) (string, string) {
	switch {
	case errors.Is(err, domain.ErrPreferenceRequired):
		return "preference_required", "user has no preference record"
	case errors.Is(err, domain.ErrStaleIndex):
		return "index_unavailable", "similarity index is rebuilding"
	default:
		return "internal_error", "an unexpected error occurred"
	}
}
