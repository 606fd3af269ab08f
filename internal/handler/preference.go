package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tastypick/recipe-recommender/internal/domain"
)

var validRestrictions = map[domain.DietaryRestriction]bool{
	domain.DietNone:        true,
	domain.DietVegetarian:  true,
	domain.DietVegan:       true,
	domain.DietPescatarian: true,
	domain.DietGlutenFree:  true,
	domain.DietDairyFree:   true,
}

var validDifficulties = map[domain.Difficulty]bool{
	"":                            true,
	domain.DifficultyBeginner:     true,
	domain.DifficultyIntermediate: true,
	domain.DifficultyAdvanced:     true,
}

// GET /users/{userID}/preference
func (h *Handler) GetPreference(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	pref, err := h.service.GetPreference(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrPreferenceNotFound) {
			writeError(w, http.StatusNotFound, "preference_not_found",
				"No preference profile for this user")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, pref)
}

// PUT /users/{userID}/preference
func (h *Handler) PutPreference(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req PreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Malformed JSON body")
		return
	}

	restriction := domain.DietaryRestriction(req.DietaryRestriction)
	if req.DietaryRestriction != "" && !validRestrictions[restriction] {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Unknown dietary_restriction")
		return
	}
	difficulty := domain.Difficulty(req.PreferredDifficulty)
	if !validDifficulties[difficulty] {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Unknown preferred_difficulty")
		return
	}
	if req.MaxCookingTime < 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "max_cooking_time must be non-negative")
		return
	}

	pref := &domain.UserPreference{
		UserID:              userID,
		DietaryRestriction:  restriction,
		MaxCookingTime:      req.MaxCookingTime,
		PreferredDifficulty: difficulty,
		Allergies:           domain.NormalizeAllergies(req.Allergies),
		FavoriteCategories:  req.FavoriteCategories,
	}
	if err := h.service.SavePreference(r.Context(), pref); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, pref)
}
