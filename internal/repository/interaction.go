package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tastypick/recipe-recommender/internal/domain"
)

// Record upserts one interaction row keyed by (user, item, kind): a repeat
// call overwrites rating and timestamp instead of duplicating. The
// kind/rating coupling is rejected here, at the store boundary.
func (r *Repository) Record(ctx context.Context, in domain.Interaction) error {
	if err := in.Validate(); err != nil {
		return err
	}

	var rating *int
	if in.Kind == domain.InteractionRate {
		rating = &in.Rating
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO interactions (user_id, item_id, kind, rating)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, item_id, kind) DO UPDATE SET
		   rating = EXCLUDED.rating,
		   created_at = now()`,
		in.UserID, in.ItemID, in.Kind, rating,
	)
	if err != nil {
		return fmt.Errorf("record %s interaction for user %d item %d: %w", in.Kind, in.UserID, in.ItemID, err)
	}
	return nil
}

func (r *Repository) Query(ctx context.Context, userID int64, q domain.InteractionQuery) ([]domain.Interaction, error) {
	query := `SELECT user_id, item_id, kind, rating, created_at FROM interactions WHERE user_id = $1`
	args := []any{userID}

	if q.Kind != "" {
		args = append(args, q.Kind)
		query += " AND kind = $" + strconv.Itoa(len(args))
	}
	if q.MinRating > 0 {
		args = append(args, q.MinRating)
		query += " AND rating >= $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY item_id, kind"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query interactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	var out []domain.Interaction
	for rows.Next() {
		var in domain.Interaction
		var rating *int
		if err := rows.Scan(&in.UserID, &in.ItemID, &in.Kind, &rating, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		if rating != nil {
			in.Rating = *rating
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return out, nil
}

// MeanRatings aggregates each item's mean rating across all users, keeping
// items at or above minMean. Items with no ratings do not appear.
func (r *Repository) MeanRatings(ctx context.Context, minMean float64, limit int) (map[int64]float64, error) {
	query := `SELECT item_id, AVG(rating)::float8 AS mean
		 FROM interactions
		 WHERE kind = 'rate'
		 GROUP BY item_id
		 HAVING AVG(rating) >= $1
		 ORDER BY mean DESC, item_id`
	args := []any{minMean}
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}
	defer rows.Close()

	means := make(map[int64]float64)
	for rows.Next() {
		var itemID int64
		var mean float64
		if err := rows.Scan(&itemID, &mean); err != nil {
			return nil, fmt.Errorf("scan rating mean: %w", err)
		}
		means[itemID] = mean
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating means: %w", err)
	}
	return means, nil
}
