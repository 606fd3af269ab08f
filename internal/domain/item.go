package domain

import "time"

type ItemKind string

const (
	ItemRecipe  ItemKind = "recipe"
	ItemArticle ItemKind = "article"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Item is a recipe or article subject to recommendation. Content holds the
// text the similarity index vectorizes (ingredient list for recipes, body
// text for articles). CookingTime of 0 and empty Difficulty/Category mean
// the field is not set.
type Item struct {
	ID          int64      `json:"id"`
	Kind        ItemKind   `json:"kind"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Category    string     `json:"category,omitempty"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	CookingTime int        `json:"cooking_time,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ItemFilter narrows candidate listing at the store level. Zero values mean
// "no constraint". Limit caps the scan; stores must not return more rows.
type ItemFilter struct {
	MaxCookingTime int
	Difficulty     Difficulty
	Categories     []string
	Limit          int
}
