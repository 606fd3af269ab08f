package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tastypick/recipe-recommender/internal/domain"
	"github.com/tastypick/recipe-recommender/internal/similarity"
)

const (
	defaultMaxResults     = 10
	maxMaxResults         = 50
	defaultCandidateLimit = 2000

	// Phase thresholds: a rating of 4+ marks an item as liked, a mean of
	// 4.0+ marks it as popular.
	minLikedRating = 4
	minPopularMean = 4.0

	// Fixed score assigned in the favorite-category phase.
	categoryScore = 0.7
)

// ItemStore reads the item corpus.
type ItemStore interface {
	ListCandidates(ctx context.Context, f domain.ItemFilter) ([]domain.Item, error)
}

// PreferenceStore reads and writes the single preference record per user.
type PreferenceStore interface {
	GetPreference(ctx context.Context, userID int64) (*domain.UserPreference, error)
	UpsertPreference(ctx context.Context, pref *domain.UserPreference) error
	ListUserIDsPaginated(ctx context.Context, page, limit int) ([]int64, error)
	CountUsers(ctx context.Context) (int, error)
}

// InteractionStore is the interaction log with per (user, item, kind) upsert
// semantics.
type InteractionStore interface {
	Record(ctx context.Context, in domain.Interaction) error
	Query(ctx context.Context, userID int64, q domain.InteractionQuery) ([]domain.Interaction, error)
	MeanRatings(ctx context.Context, minMean float64, limit int) (map[int64]float64, error)
}

// RecommendationStore persists issued recommendations.
type RecommendationStore interface {
	InsertBatch(ctx context.Context, recs []domain.RecommendationRecord) error
	GetForUser(ctx context.Context, id uuid.UUID, userID int64) (*domain.RecommendationRecord, error)
	SetInteracted(ctx context.Context, id uuid.UUID, userID int64) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.RecommendationRecord, error)
}

// NeighborIndex serves precomputed similarity lookups.
type NeighborIndex interface {
	Neighbors(itemID int64) ([]similarity.Neighbor, error)
}

// PopularityCache caches the mean-rating aggregate between rating writes.
type PopularityCache interface {
	GetPopularity(ctx context.Context) (map[int64]float64, bool, error)
	SetPopularity(ctx context.Context, means map[int64]float64) error
	InvalidatePopularity(ctx context.Context) error
}

type Service struct {
	items        ItemStore
	prefs        PreferenceStore
	interactions InteractionStore
	recs         RecommendationStore
	index        NeighborIndex
	cache        PopularityCache

	dietaryRules   DietaryRules
	candidateLimit int
}

func NewService(items ItemStore, prefs PreferenceStore, interactions InteractionStore,
	recs RecommendationStore, index NeighborIndex, cache PopularityCache) *Service {
	return &Service{
		items:          items,
		prefs:          prefs,
		interactions:   interactions,
		recs:           recs,
		index:          index,
		cache:          cache,
		dietaryRules:   DefaultDietaryRules(),
		candidateLimit: defaultCandidateLimit,
	}
}

// SetDietaryRules replaces the restriction policy table. Deployments with
// their own exclusion rules install them here.
func (s *Service) SetDietaryRules(rules DietaryRules) {
	s.dietaryRules = rules
}

// SetCandidateLimit bounds the corpus scan and the popularity aggregation.
func (s *Service) SetCandidateLimit(n int) {
	if n > 0 {
		s.candidateLimit = n
	}
}

// Rank produces the ordered recommendation list for a user: first items
// similar to the user's highly rated ones, then popular items, then items
// from favorite categories, each phase only filling what the previous left
// open. Every returned item is persisted as a RecommendationRecord. The
// result is deterministic for identical store state.
func (s *Service) Rank(ctx context.Context, userID int64, maxResults int) ([]domain.ScoredItem, error) {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	} else if maxResults > maxMaxResults {
		maxResults = maxMaxResults
	}

	pref, err := s.prefs.GetPreference(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrPreferenceNotFound) {
			return nil, domain.ErrPreferenceRequired
		}
		return nil, fmt.Errorf("fetch preference: %w", err)
	}

	candidates, err := s.items.ListCandidates(ctx, domain.ItemFilter{
		MaxCookingTime: pref.MaxCookingTime,
		Difficulty:     pref.PreferredDifficulty,
		Limit:          s.candidateLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}
	candidates = Narrow(candidates, pref, s.dietaryRules)

	candidateSet := make(map[int64]domain.Item, len(candidates))
	for _, it := range candidates {
		candidateSet[it.ID] = it
	}

	history, err := s.interactions.Query(ctx, userID, domain.InteractionQuery{})
	if err != nil {
		return nil, fmt.Errorf("fetch interactions: %w", err)
	}
	interacted := make(map[int64]bool, len(history))
	var liked []int64
	for _, in := range history {
		interacted[in.ItemID] = true
		if in.Kind == domain.InteractionRate && in.Rating >= minLikedRating {
			liked = append(liked, in.ItemID)
		}
	}

	selected := make([]domain.ScoredItem, 0, maxResults)
	chosen := make(map[int64]bool)

	// Phase 1: similarity to liked items.
	if len(liked) > 0 {
		partners, err := s.similarPartners(liked)
		if err != nil {
			return nil, err
		}
		for _, p := range sortByScore(partners) {
			if len(selected) >= maxResults {
				break
			}
			item, ok := candidateSet[p.id]
			if !ok || interacted[p.id] || chosen[p.id] {
				continue
			}
			chosen[p.id] = true
			selected = append(selected, domain.ScoredItem{
				Item:   item,
				Score:  p.score,
				Reason: domain.ReasonSimilarToRated,
			})
		}
	}

	// Phase 2: popularity across all users.
	if len(selected) < maxResults {
		means, err := s.popularity(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range sortByScore(meansFor(candidateSet, means)) {
			if len(selected) >= maxResults {
				break
			}
			if chosen[p.id] {
				continue
			}
			chosen[p.id] = true
			selected = append(selected, domain.ScoredItem{
				Item:   candidateSet[p.id],
				Score:  p.score,
				Reason: domain.ReasonPopular,
			})
		}
	}

	// Phase 3: favorite categories. Order here is a policy choice; item id
	// ascending keeps the whole ranking deterministic.
	if len(selected) < maxResults && len(pref.FavoriteCategories) > 0 {
		favorite := make(map[string]bool, len(pref.FavoriteCategories))
		for _, c := range pref.FavoriteCategories {
			favorite[c] = true
		}
		ids := make([]int64, 0, len(candidateSet))
		for id, it := range candidateSet {
			if !chosen[id] && it.Category != "" && favorite[it.Category] {
				ids = append(ids, id)
			}
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			if len(selected) >= maxResults {
				break
			}
			chosen[id] = true
			selected = append(selected, domain.ScoredItem{
				Item:   candidateSet[id],
				Score:  categoryScore,
				Reason: domain.ReasonFavoriteCategory,
			})
		}
	}

	if err := s.persistRecommendations(ctx, userID, selected); err != nil {
		return nil, err
	}
	return selected, nil
}

// similarPartners merges the neighbor lists of all liked items, keeping the
// best score per partner. A stale index is retried once before surfacing.
func (s *Service) similarPartners(liked []int64) (map[int64]float64, error) {
	partners := make(map[int64]float64)
	for _, itemID := range liked {
		neighbors, err := s.index.Neighbors(itemID)
		if errors.Is(err, domain.ErrStaleIndex) {
			neighbors, err = s.index.Neighbors(itemID)
		}
		if err != nil {
			return nil, fmt.Errorf("similarity lookup for item %d: %w", itemID, err)
		}
		for _, n := range neighbors {
			if n.Score > partners[n.ItemID] {
				partners[n.ItemID] = n.Score
			}
		}
	}
	return partners, nil
}

// popularity returns the mean rating per item, cache-aside. Cache failures
// degrade to a store read.
func (s *Service) popularity(ctx context.Context) (map[int64]float64, error) {
	if s.cache != nil {
		means, found, err := s.cache.GetPopularity(ctx)
		if err != nil {
			log.Printf("[service] popularity cache get error: %v", err)
		} else if found {
			return means, nil
		}
	}

	means, err := s.interactions.MeanRatings(ctx, minPopularMean, s.candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetPopularity(ctx, means); err != nil {
			log.Printf("[service] popularity cache set error: %v", err)
		}
	}
	return means, nil
}

// persistRecommendations logs the issued list. The log is part of the
// ranking contract, so a write failure fails the request.
func (s *Service) persistRecommendations(ctx context.Context, userID int64, selected []domain.ScoredItem) error {
	if len(selected) == 0 {
		return nil
	}
	now := time.Now().UTC()
	records := make([]domain.RecommendationRecord, len(selected))
	for i := range selected {
		id := uuid.New()
		selected[i].RecommendationID = id
		records[i] = domain.RecommendationRecord{
			ID:        id,
			UserID:    userID,
			ItemID:    selected[i].Item.ID,
			Score:     selected[i].Score,
			Reason:    selected[i].Reason,
			CreatedAt: now,
		}
	}
	if err := s.recs.InsertBatch(ctx, records); err != nil {
		return fmt.Errorf("persist recommendations: %w", err)
	}
	return nil
}

type scoredID struct {
	id    int64
	score float64
}

func meansFor(candidates map[int64]domain.Item, means map[int64]float64) map[int64]float64 {
	out := make(map[int64]float64)
	for id := range candidates {
		if m, ok := means[id]; ok {
			out[id] = m
		}
	}
	return out
}

// sortByScore orders score descending, item id ascending on ties.
func sortByScore(scores map[int64]float64) []scoredID {
	out := make([]scoredID, 0, len(scores))
	for id, score := range scores {
		out = append(out, scoredID{id: id, score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		return out[i].id < out[j].id
	})
	return out
}
