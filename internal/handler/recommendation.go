package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tastypick/recipe-recommender/internal/domain"
)

// GET /users/{userID}/recommendations
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	// Parse and validate limit
	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > 50 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	ranked, err := h.service.Rank(r.Context(), userID, limit)
	if err != nil {
		if errors.Is(err, domain.ErrPreferenceRequired) {
			writeError(w, http.StatusUnprocessableEntity, "preference_required",
				fmt.Sprintf("User %d has no preference profile yet", userID))
			return
		}
		if errors.Is(err, domain.ErrStaleIndex) {
			writeError(w, http.StatusServiceUnavailable, "index_unavailable",
				"Similarity index is rebuilding, please try again")
			return
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			writeError(w, http.StatusServiceUnavailable, "request_timeout",
				"Request timed out, please try again")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	resp := RecommendationResponse{
		UserID:          userID,
		Recommendations: ranked,
		Metadata: domain.RecommendationMeta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalCount:  len(ranked),
		},
	}

	writeJSON(w, http.StatusOK, resp)
}

// POST /users/{userID}/recommendations/{recID}/interaction
func (h *Handler) PostRecommendationFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	recID, err := uuid.Parse(chi.URLParam(r, "recID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid recommendation id")
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Malformed JSON body")
		return
	}

	err = h.service.MarkInteracted(r.Context(), userID, recID,
		domain.InteractionKind(req.Kind), req.Rating)
	if err != nil {
		if errors.Is(err, domain.ErrRecommendationNotFound) {
			writeError(w, http.StatusNotFound, "recommendation_not_found",
				fmt.Sprintf("Recommendation %s does not exist for user %d", recID, userID))
			return
		}
		if errors.Is(err, domain.ErrInvalidInteraction) {
			writeError(w, http.StatusBadRequest, "invalid_interaction",
				"Rating must be 1-5 and only allowed with interaction_type=rate")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// GET /users/{userID}/recommendations/history
func (h *Handler) GetRecommendationHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > 200 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	records, err := h.service.RecommendationHistory(r.Context(), userID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id": userID,
		"history": records,
	})
}

func parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return 0, false
	}
	return userID, true
}
