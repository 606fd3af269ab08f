package domain

import (
	"sort"
	"strings"
	"time"
)

type DietaryRestriction string

const (
	DietNone        DietaryRestriction = "none"
	DietVegetarian  DietaryRestriction = "vegetarian"
	DietVegan       DietaryRestriction = "vegan"
	DietPescatarian DietaryRestriction = "pescatarian"
	DietGlutenFree  DietaryRestriction = "gluten_free"
	DietDairyFree   DietaryRestriction = "dairy_free"
)

// UserPreference is the single active preference record per user. A second
// save overwrites, it never appends.
type UserPreference struct {
	UserID              int64              `json:"user_id"`
	DietaryRestriction  DietaryRestriction `json:"dietary_restriction"`
	MaxCookingTime      int                `json:"max_cooking_time,omitempty"`
	PreferredDifficulty Difficulty         `json:"preferred_difficulty,omitempty"`
	Allergies           []string           `json:"allergies"`
	FavoriteCategories  []string           `json:"favorite_categories"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// NormalizeAllergies parses a comma-separated allergy list into lowercase
// tokens, trimmed, deduplicated and sorted.
func NormalizeAllergies(raw string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}
