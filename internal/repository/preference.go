package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tastypick/recipe-recommender/internal/domain"
)

func (r *Repository) GetPreference(ctx context.Context, userID int64) (*domain.UserPreference, error) {
	pref := &domain.UserPreference{}
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, dietary_restriction, max_cooking_time, preferred_difficulty,
		        allergies, favorite_categories, created_at, updated_at
		 FROM user_preferences WHERE user_id = $1`,
		userID,
	).Scan(&pref.UserID, &pref.DietaryRestriction, &pref.MaxCookingTime,
		&pref.PreferredDifficulty, &pref.Allergies, &pref.FavoriteCategories,
		&pref.CreatedAt, &pref.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPreferenceNotFound
		}
		return nil, fmt.Errorf("query preference for user %d: %w", userID, err)
	}
	return pref, nil
}

// UpsertPreference keeps at most one preference row per user: a second save
// overwrites every field and bumps updated_at.
func (r *Repository) UpsertPreference(ctx context.Context, pref *domain.UserPreference) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_preferences
		   (user_id, dietary_restriction, max_cooking_time, preferred_difficulty, allergies, favorite_categories)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE SET
		   dietary_restriction = EXCLUDED.dietary_restriction,
		   max_cooking_time = EXCLUDED.max_cooking_time,
		   preferred_difficulty = EXCLUDED.preferred_difficulty,
		   allergies = EXCLUDED.allergies,
		   favorite_categories = EXCLUDED.favorite_categories,
		   updated_at = now()`,
		pref.UserID, pref.DietaryRestriction, pref.MaxCookingTime,
		pref.PreferredDifficulty, pref.Allergies, pref.FavoriteCategories,
	)
	if err != nil {
		return fmt.Errorf("upsert preference for user %d: %w", pref.UserID, err)
	}
	return nil
}

func (r *Repository) ListUserIDsPaginated(ctx context.Context, page, limit int) ([]int64, error) {
	offset := (page - 1) * limit
	rows, err := r.pool.Query(ctx,
		`SELECT user_id FROM user_preferences ORDER BY user_id LIMIT $1 OFFSET $2`, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query user ids for page %d: %w", page, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user ids: %w", err)
	}
	return ids, nil
}

func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM user_preferences`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}
