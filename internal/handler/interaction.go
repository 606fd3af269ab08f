package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tastypick/recipe-recommender/internal/domain"
)

// POST /users/{userID}/interactions
func (h *Handler) PostInteraction(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req InteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Malformed JSON body")
		return
	}
	if req.ItemID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid item_id")
		return
	}

	in := domain.Interaction{
		UserID: userID,
		ItemID: req.ItemID,
		Kind:   domain.InteractionKind(req.Kind),
		Rating: req.Rating,
	}
	if err := h.service.RecordInteraction(r.Context(), in); err != nil {
		if errors.Is(err, domain.ErrInvalidInteraction) {
			writeError(w, http.StatusBadRequest, "invalid_interaction",
				"Rating must be 1-5 and only allowed with interaction_type=rate")
			return
		}
		if errors.Is(err, domain.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "item_not_found", "Item does not exist")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}

// GET /users/{userID}/interactions
func (h *Handler) GetInteractions(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	q := domain.InteractionQuery{
		Kind: domain.InteractionKind(r.URL.Query().Get("interaction_type")),
	}
	list, err := h.service.ListInteractions(r.Context(), userID, q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":      userID,
		"interactions": list,
	})
}
