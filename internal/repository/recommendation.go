package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tastypick/recipe-recommender/internal/domain"
)

// InsertBatch persists one ranking's issued recommendations in a single
// statement.
func (r *Repository) InsertBatch(ctx context.Context, recs []domain.RecommendationRecord) error {
	if len(recs) == 0 {
		return nil
	}

	rows := make([]string, 0, len(recs))
	args := make([]any, 0, len(recs)*6)
	for _, rec := range recs {
		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6))
		args = append(args, rec.ID, rec.UserID, rec.ItemID, rec.Score, rec.Reason, rec.CreatedAt)
	}

	query := "INSERT INTO recommendations (id, user_id, item_id, score, reason, created_at) VALUES " +
		strings.Join(rows, ", ")
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %d recommendations: %w", len(recs), err)
	}
	return nil
}

const recommendationColumns = "id, user_id, item_id, score, reason, interacted, created_at"

// GetForUser returns the record only when it belongs to userID; anything
// else is ErrRecommendationNotFound, so callers cannot probe foreign ids.
func (r *Repository) GetForUser(ctx context.Context, id uuid.UUID, userID int64) (*domain.RecommendationRecord, error) {
	rec := &domain.RecommendationRecord{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+recommendationColumns+` FROM recommendations WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&rec.ID, &rec.UserID, &rec.ItemID, &rec.Score, &rec.Reason, &rec.Interacted, &rec.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecommendationNotFound
		}
		return nil, fmt.Errorf("query recommendation %s: %w", id, err)
	}
	return rec, nil
}

// SetInteracted flips the interacted flag. The per-row UPDATE is what
// serializes concurrent feedback calls on the same recommendation.
func (r *Repository) SetInteracted(ctx context.Context, id uuid.UUID, userID int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE recommendations SET interacted = true WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("mark recommendation %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecommendationNotFound
	}
	return nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.RecommendationRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+recommendationColumns+` FROM recommendations
		 WHERE user_id = $1 ORDER BY created_at DESC, item_id LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recommendations for user %d: %w", userID, err)
	}
	defer rows.Close()

	var out []domain.RecommendationRecord
	for rows.Next() {
		var rec domain.RecommendationRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.ItemID, &rec.Score, &rec.Reason,
			&rec.Interacted, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recommendations: %w", err)
	}
	return out, nil
}
