package handler

import "github.com/tastypick/recipe-recommender/internal/domain"

type RecommendationResponse struct {
	UserID          int64                     `json:"user_id"`
	Recommendations []domain.ScoredItem       `json:"recommendations"`
	Metadata        domain.RecommendationMeta `json:"metadata"`
}

type InteractionRequest struct {
	ItemID int64  `json:"item_id"`
	Kind   string `json:"interaction_type"`
	Rating int    `json:"rating,omitempty"`
}

// FeedbackRequest reacts to an already issued recommendation; the item is
// implied by the recommendation id in the URL.
type FeedbackRequest struct {
	Kind   string `json:"interaction_type"`
	Rating int    `json:"rating,omitempty"`
}

// PreferenceRequest carries allergies as free text, comma separated, the way
// the profile form submits them.
type PreferenceRequest struct {
	DietaryRestriction  string   `json:"dietary_restriction"`
	MaxCookingTime      int      `json:"max_cooking_time"`
	PreferredDifficulty string   `json:"preferred_difficulty"`
	Allergies           string   `json:"allergies"`
	FavoriteCategories  []string `json:"favorite_categories"`
}

type RebuildResponse struct {
	Status    string `json:"status"`
	EdgeCount int    `json:"edge_count"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
