package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tastypick/recipe-recommender/internal/domain"
)

// ReplaceBuild persists a full edge table as a new build and makes it the
// active one in a single transaction, so concurrent readers see either the
// previous build or the new one, never a mix. Older builds are dropped.
func (r *Repository) ReplaceBuild(ctx context.Context, buildID uuid.UUID, edges []domain.SimilarityEdge) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin build %s: %w", buildID, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO index_builds (id, active) VALUES ($1, false)`, buildID,
	); err != nil {
		return fmt.Errorf("insert build %s: %w", buildID, err)
	}

	if len(edges) > 0 {
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"similarity_edges"},
			[]string{"build_id", "item_a", "item_b", "score"},
			pgx.CopyFromSlice(len(edges), func(i int) ([]any, error) {
				e := edges[i]
				return []any{buildID, e.ItemA, e.ItemB, e.Score}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copy %d edges: %w", len(edges), err)
		}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE index_builds SET active = (id = $1)`, buildID,
	); err != nil {
		return fmt.Errorf("activate build %s: %w", buildID, err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM index_builds WHERE id <> $1`, buildID,
	); err != nil {
		return fmt.Errorf("drop stale builds: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit build %s: %w", buildID, err)
	}
	return nil
}

// ActiveBuild loads the currently active edge table. Returns
// domain.ErrStaleIndex when no build has been persisted yet.
func (r *Repository) ActiveBuild(ctx context.Context) (uuid.UUID, []domain.SimilarityEdge, error) {
	var buildID uuid.UUID
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM index_builds WHERE active`,
	).Scan(&buildID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.UUID{}, nil, domain.ErrStaleIndex
		}
		return uuid.UUID{}, nil, fmt.Errorf("query active build: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT item_a, item_b, score FROM similarity_edges
		 WHERE build_id = $1 ORDER BY item_a, item_b`, buildID,
	)
	if err != nil {
		return uuid.UUID{}, nil, fmt.Errorf("query edges for build %s: %w", buildID, err)
	}
	defer rows.Close()

	var edges []domain.SimilarityEdge
	for rows.Next() {
		var e domain.SimilarityEdge
		if err := rows.Scan(&e.ItemA, &e.ItemB, &e.Score); err != nil {
			return uuid.UUID{}, nil, fmt.Errorf("scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return uuid.UUID{}, nil, fmt.Errorf("iterate edges: %w", err)
	}
	return buildID, edges, nil
}
