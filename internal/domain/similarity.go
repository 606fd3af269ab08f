package domain

// SimilarityEdge is a precomputed content-similarity score between two items.
// At most one edge exists per unordered pair; lookups must consult both
// directions.
type SimilarityEdge struct {
	ItemA int64   `json:"item_a"`
	ItemB int64   `json:"item_b"`
	Score float64 `json:"score"`
}
