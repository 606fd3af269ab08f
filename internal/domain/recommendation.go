package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reason is the fixed-vocabulary explanation attached to a recommended item.
type Reason string

const (
	ReasonSimilarToRated   Reason = "similar to an item you rated highly"
	ReasonPopular          Reason = "highly rated by other users"
	ReasonFavoriteCategory Reason = "matches one of your favorite categories"
)

// RecommendationRecord is one issued recommendation. Created by the ranker,
// only the Interacted flag is mutated afterwards (by the feedback recorder).
type RecommendationRecord struct {
	ID         uuid.UUID `json:"id"`
	UserID     int64     `json:"user_id"`
	ItemID     int64     `json:"item_id"`
	Score      float64   `json:"score"`
	Reason     Reason    `json:"reason"`
	Interacted bool      `json:"interacted"`
	CreatedAt  time.Time `json:"created_at"`
}

// ScoredItem is one entry of a ranked recommendation list.
type ScoredItem struct {
	RecommendationID uuid.UUID `json:"recommendation_id"`
	Item             Item      `json:"item"`
	Score            float64   `json:"score"`
	Reason           Reason    `json:"reason"`
}

type RecommendationMeta struct {
	GeneratedAt string `json:"generated_at"`
	TotalCount  int    `json:"total_count"`
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

type BatchUserResult struct {
	UserID          int64        `json:"user_id"`
	Recommendations []ScoredItem `json:"recommendations,omitempty"`
	Status          string       `json:"status"`
	Error           string       `json:"error,omitempty"`
	Message         string       `json:"message,omitempty"`
}

type BatchSummary struct {
	SuccessCount     int   `json:"success_count"`
	FailedCount      int   `json:"failed_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type BatchResponse struct {
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalUsers int               `json:"total_users"`
	Results    []BatchUserResult `json:"results"`
	Summary    BatchSummary      `json:"summary"`
	Metadata   BatchMeta         `json:"metadata"`
}

type BatchMeta struct {
	GeneratedAt string `json:"generated_at"`
}
