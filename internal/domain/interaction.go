package domain

import "time"

type InteractionKind string

const (
	InteractionView InteractionKind = "view"
	InteractionSave InteractionKind = "save"
	InteractionCook InteractionKind = "cook"
	InteractionRate InteractionKind = "rate"
)

// Interaction is one recorded user action against an item. At most one row
// exists per (user, item, kind); recording again overwrites rating and
// timestamp. Rating is set if and only if Kind is rate.
type Interaction struct {
	UserID    int64           `json:"user_id"`
	ItemID    int64           `json:"item_id"`
	Kind      InteractionKind `json:"kind"`
	Rating    int             `json:"rating,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Validate checks the kind/rating coupling before the store accepts a row.
func (i Interaction) Validate() error {
	switch i.Kind {
	case InteractionView, InteractionSave, InteractionCook:
		if i.Rating != 0 {
			return ErrInvalidInteraction
		}
	case InteractionRate:
		if i.Rating < 1 || i.Rating > 5 {
			return ErrInvalidInteraction
		}
	default:
		return ErrInvalidInteraction
	}
	return nil
}

// InteractionQuery narrows an interaction listing. Zero values mean
// "no constraint".
type InteractionQuery struct {
	Kind      InteractionKind
	MinRating int
}
