// Command indexer runs a single similarity index build and exits. Useful for
// cron-driven rebuilds and for warming a fresh database before the server
// starts.
package main

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tastypick/recipe-recommender/internal/config"
	"github.com/tastypick/recipe-recommender/internal/repository"
	"github.com/tastypick/recipe-recommender/internal/similarity"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to parse database config %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalf("failed to connect to database %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("database not ready: %v", err)
	}

	repo := repository.New(pool)
	index := similarity.NewIndex()
	rebuilder := similarity.NewRebuilder(repo, repo, index, cfg.SimilarityThreshold, cfg.CandidateLimit)

	start := time.Now()
	edgeCount, err := rebuilder.Rebuild(ctx)
	if err != nil {
		log.Fatalf("index build failed: %v", err)
	}
	log.Printf("index build complete: %d edges in %s", edgeCount, time.Since(start).Round(time.Millisecond))
}
