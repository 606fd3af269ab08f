package domain

import "errors"

var (
	// ErrPreferenceRequired means ranking was attempted for a user with no
	// preference record. The caller must create one first.
	ErrPreferenceRequired = errors.New("user preference required")

	// ErrPreferenceNotFound means a preference read found no record.
	ErrPreferenceNotFound = errors.New("preference not found")

	// ErrRecommendationNotFound means the recommendation id is unknown or
	// does not belong to the calling user.
	ErrRecommendationNotFound = errors.New("recommendation not found")

	// ErrInvalidInteraction means the kind/rating coupling was violated:
	// a rating without kind=rate, or kind=rate without a rating in 1-5.
	ErrInvalidInteraction = errors.New("invalid interaction")

	// ErrStaleIndex means a similarity lookup hit the index mid-swap.
	// Transient; callers may retry.
	ErrStaleIndex = errors.New("similarity index not ready")

	// ErrItemNotFound means an item id resolved to no row.
	ErrItemNotFound = errors.New("item not found")
)
