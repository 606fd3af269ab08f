package similarity

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/tastypick/recipe-recommender/internal/domain"
)

// ItemSource supplies the corpus to vectorize.
type ItemSource interface {
	ListAllItems(ctx context.Context, limit int) ([]domain.Item, error)
}

// EdgeStore persists similarity builds. ReplaceBuild must make the new build
// the active one in a single transaction; ActiveBuild returns
// domain.ErrStaleIndex when no build exists yet.
type EdgeStore interface {
	ReplaceBuild(ctx context.Context, buildID uuid.UUID, edges []domain.SimilarityEdge) error
	ActiveBuild(ctx context.Context) (uuid.UUID, []domain.SimilarityEdge, error)
}

// Rebuilder runs the offline index build: scan the corpus, vectorize, persist
// the edge table, then swap the served snapshot. It is the only long-running
// operation in the engine and must stay off the request path.
type Rebuilder struct {
	items       ItemSource
	edges       EdgeStore
	index       *Index
	builder     Builder
	corpusLimit int
}

func NewRebuilder(items ItemSource, edges EdgeStore, index *Index, threshold float64, corpusLimit int) *Rebuilder {
	return &Rebuilder{
		items:       items,
		edges:       edges,
		index:       index,
		builder:     Builder{Threshold: threshold},
		corpusLimit: corpusLimit,
	}
}

// LoadActive installs the persisted active build into the index. Returns
// false when no build has ever been persisted; the index stays stale and the
// ranker falls back after its retry.
func (r *Rebuilder) LoadActive(ctx context.Context) (bool, error) {
	buildID, edges, err := r.edges.ActiveBuild(ctx)
	if errors.Is(err, domain.ErrStaleIndex) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load active build: %w", err)
	}
	r.index.Install(buildID, edges)
	return true, nil
}

// Rebuild scans up to corpusLimit items, recomputes the full edge table,
// persists it as a new build and swaps it in. Returns the edge count.
func (r *Rebuilder) Rebuild(ctx context.Context) (int, error) {
	start := time.Now()

	items, err := r.items.ListAllItems(ctx, r.corpusLimit)
	if err != nil {
		return 0, fmt.Errorf("list corpus: %w", err)
	}

	docs := make([]Document, 0, len(items))
	for _, it := range items {
		docs = append(docs, Document{ItemID: it.ID, Text: it.Content})
	}

	buildID := uuid.New()
	edges := r.builder.Build(docs)

	if err := r.edges.ReplaceBuild(ctx, buildID, edges); err != nil {
		return 0, fmt.Errorf("persist build %s: %w", buildID, err)
	}
	r.index.Install(buildID, edges)

	log.Printf("[similarity] rebuilt index: %d items, %d edges in %s",
		len(items), len(edges), time.Since(start).Round(time.Millisecond))
	return len(edges), nil
}

// RunPeriodic rebuilds on the given interval until ctx is cancelled. Failures
// are logged and the previous snapshot keeps serving.
func (r *Rebuilder) RunPeriodic(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.Rebuild(ctx); err != nil {
				log.Printf("[similarity] periodic rebuild failed: %v", err)
			}
		}
	}
}
