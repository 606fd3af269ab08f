package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tastypick/recipe-recommender/internal/domain"
)

const itemColumns = "id, kind, title, content, category, difficulty, cooking_time, created_at"

// ListCandidates returns items matching the filter, oldest first so the
// candidate ceiling cuts deterministically.
func (r *Repository) ListCandidates(ctx context.Context, f domain.ItemFilter) ([]domain.Item, error) {
	var conds []string
	var args []any

	if f.MaxCookingTime > 0 {
		args = append(args, f.MaxCookingTime)
		conds = append(conds, "(cooking_time = 0 OR cooking_time <= $"+strconv.Itoa(len(args))+")")
	}
	if f.Difficulty != "" {
		args = append(args, string(f.Difficulty))
		conds = append(conds, "difficulty = $"+strconv.Itoa(len(args)))
	}
	if len(f.Categories) > 0 {
		args = append(args, f.Categories)
		conds = append(conds, "category = ANY($"+strconv.Itoa(len(args))+")")
	}

	query := "SELECT " + itemColumns + " FROM items"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Kind, &it.Title, &it.Content, &it.Category,
			&it.Difficulty, &it.CookingTime, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// ListAllItems feeds the similarity corpus scan, capped by limit.
func (r *Repository) ListAllItems(ctx context.Context, limit int) ([]domain.Item, error) {
	return r.ListCandidates(ctx, domain.ItemFilter{Limit: limit})
}
