package service

import (
	"context"
	"fmt"

	"github.com/tastypick/recipe-recommender/internal/domain"
)

// GetPreference returns the user's preference record, or
// domain.ErrPreferenceNotFound.
func (s *Service) GetPreference(ctx context.Context, userID int64) (*domain.UserPreference, error) {
	return s.prefs.GetPreference(ctx, userID)
}

// SavePreference upserts the user's single preference record. Allergy tokens
// arrive already normalized from domain.NormalizeAllergies; favorite
// categories are deduplicated here so the stored set is order-irrelevant.
func (s *Service) SavePreference(ctx context.Context, pref *domain.UserPreference) error {
	if pref.DietaryRestriction == "" {
		pref.DietaryRestriction = domain.DietNone
	}

	seen := make(map[string]bool, len(pref.FavoriteCategories))
	cats := pref.FavoriteCategories[:0]
	for _, c := range pref.FavoriteCategories {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		cats = append(cats, c)
	}
	pref.FavoriteCategories = cats

	if err := s.prefs.UpsertPreference(ctx, pref); err != nil {
		return fmt.Errorf("save preference: %w", err)
	}
	return nil
}
