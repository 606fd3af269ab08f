package service

import (
	"strings"

	"github.com/tastypick/recipe-recommender/internal/domain"
)

// DietaryRules maps a restriction to a predicate that reports whether an
// item is allowed under it. Restrictions without an entry filter nothing;
// rule sets vary by deployment, so the table is pluggable.
type DietaryRules map[domain.DietaryRestriction]func(domain.Item) bool

// DefaultDietaryRules is a term-exclusion policy over the item's ingredient
// text, covering the corpus languages (English and Korean ingredient
// strings). Deployments override it via Service.SetDietaryRules.
func DefaultDietaryRules() DietaryRules {
	meat := []string{"beef", "pork", "chicken", "ham", "bacon", "sausage", "소고기", "돼지고기", "닭고기", "삼겹살", "햄"}
	seafood := []string{"fish", "shrimp", "anchovy", "tuna", "squid", "clam", "생선", "새우", "멸치", "참치", "오징어", "조개"}
	dairy := []string{"milk", "cheese", "butter", "cream", "yogurt", "우유", "치즈", "버터", "생크림", "요거트"}
	egg := []string{"egg", "계란", "달걀"}
	gluten := []string{"flour", "wheat", "barley", "noodle", "bread", "밀가루", "보리", "국수", "라면", "빵"}

	return DietaryRules{
		domain.DietVegetarian:  excludeTerms(concat(meat, seafood)),
		domain.DietVegan:       excludeTerms(concat(meat, seafood, dairy, egg)),
		domain.DietPescatarian: excludeTerms(meat),
		domain.DietGlutenFree:  excludeTerms(gluten),
		domain.DietDairyFree:   excludeTerms(dairy),
	}
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func excludeTerms(terms []string) func(domain.Item) bool {
	return func(it domain.Item) bool {
		return !containsAnyTerm(it.Content, terms)
	}
}

func containsAnyTerm(content string, terms []string) bool {
	content = strings.ToLower(content)
	for _, term := range terms {
		if term != "" && strings.Contains(content, term) {
			return true
		}
	}
	return false
}

// Narrow applies the user's preference constraints to the candidate set:
// max cooking time (inclusive), exact difficulty, allergy term exclusion,
// then the dietary rule. It never adds items and never mutates its inputs;
// a preference with no constraints returns the candidates unchanged.
func Narrow(items []domain.Item, pref *domain.UserPreference, rules DietaryRules) []domain.Item {
	if pref == nil {
		return items
	}

	var dietary func(domain.Item) bool
	if pref.DietaryRestriction != "" && pref.DietaryRestriction != domain.DietNone {
		dietary = rules[pref.DietaryRestriction]
	}

	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if pref.MaxCookingTime > 0 && it.CookingTime > pref.MaxCookingTime {
			continue
		}
		if pref.PreferredDifficulty != "" && it.Difficulty != pref.PreferredDifficulty {
			continue
		}
		if len(pref.Allergies) > 0 && containsAnyTerm(it.Content, pref.Allergies) {
			continue
		}
		if dietary != nil && !dietary(it) {
			continue
		}
		out = append(out, it)
	}
	return out
}
