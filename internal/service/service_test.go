package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/tastypick/recipe-recommender/internal/domain"
	"github.com/tastypick/recipe-recommender/internal/similarity"
)

// memStore implements every store interface in memory, with the same
// filtering and upsert semantics the SQL repository has.
type memStore struct {
	mu           sync.Mutex
	items        []domain.Item
	prefs        map[int64]*domain.UserPreference
	interactions []domain.Interaction
	recs         []domain.RecommendationRecord
}

func newMemStore() *memStore {
	return &memStore{prefs: make(map[int64]*domain.UserPreference)}
}

func (m *memStore) ListCandidates(ctx context.Context, f domain.ItemFilter) ([]domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Item
	for _, it := range m.items {
		if f.MaxCookingTime > 0 && it.CookingTime > f.MaxCookingTime {
			continue
		}
		if f.Difficulty != "" && it.Difficulty != f.Difficulty {
			continue
		}
		out = append(out, it)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}

func (m *memStore) GetPreference(ctx context.Context, userID int64) (*domain.UserPreference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prefs[userID]
	if !ok {
		return nil, domain.ErrPreferenceNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) UpsertPreference(ctx context.Context, pref *domain.UserPreference) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *pref
	m.prefs[pref.UserID] = &cp
	return nil
}

func (m *memStore) ListUserIDsPaginated(ctx context.Context, page, limit int) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int64
	for id := range m.prefs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	start := (page - 1) * limit
	if start >= len(ids) {
		return nil, nil
	}
	end := start + limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[start:end], nil
}

func (m *memStore) CountUsers(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prefs), nil
}

func (m *memStore) Record(ctx context.Context, in domain.Interaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, ex := range m.interactions {
		if ex.UserID == in.UserID && ex.ItemID == in.ItemID && ex.Kind == in.Kind {
			m.interactions[i] = in
			return nil
		}
	}
	m.interactions = append(m.interactions, in)
	return nil
}

func (m *memStore) Query(ctx context.Context, userID int64, q domain.InteractionQuery) ([]domain.Interaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Interaction
	for _, in := range m.interactions {
		if in.UserID != userID {
			continue
		}
		if q.Kind != "" && in.Kind != q.Kind {
			continue
		}
		if q.MinRating > 0 && in.Rating < q.MinRating {
			continue
		}
		out = append(out, in)
	}
	return out, nil
}

func (m *memStore) MeanRatings(ctx context.Context, minMean float64, limit int) (map[int64]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sums := make(map[int64]float64)
	counts := make(map[int64]int)
	for _, in := range m.interactions {
		if in.Kind != domain.InteractionRate {
			continue
		}
		sums[in.ItemID] += float64(in.Rating)
		counts[in.ItemID]++
	}
	means := make(map[int64]float64)
	for id, sum := range sums {
		mean := sum / float64(counts[id])
		if mean >= minMean {
			means[id] = mean
		}
		if limit > 0 && len(means) >= limit {
			break
		}
	}
	return means, nil
}

func (m *memStore) InsertBatch(ctx context.Context, recs []domain.RecommendationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, recs...)
	return nil
}

func (m *memStore) GetForUser(ctx context.Context, id uuid.UUID, userID int64) (*domain.RecommendationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.recs {
		if r.ID == id && r.UserID == userID {
			cp := r
			return &cp, nil
		}
	}
	return nil, domain.ErrRecommendationNotFound
}

func (m *memStore) SetInteracted(ctx context.Context, id uuid.UUID, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.recs {
		if r.ID == id && r.UserID == userID {
			m.recs[i].Interacted = true
			return nil
		}
	}
	return domain.ErrRecommendationNotFound
}

func (m *memStore) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.RecommendationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.RecommendationRecord
	for _, r := range m.recs {
		if r.UserID == userID {
			out = append(out, r)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// flakyIndex fails the first n lookups with ErrStaleIndex.
type flakyIndex struct {
	inner    *similarity.Index
	failures int
}

func (f *flakyIndex) Neighbors(itemID int64) ([]similarity.Neighbor, error) {
	if f.failures > 0 {
		f.failures--
		return nil, domain.ErrStaleIndex
	}
	return f.inner.Neighbors(itemID)
}

func installedIndex(edges ...domain.SimilarityEdge) *similarity.Index {
	ix := similarity.NewIndex()
	ix.Install(uuid.New(), edges)
	return ix
}

func newTestService(store *memStore, index NeighborIndex) *Service {
	return NewService(store, store, store, store, index, nil)
}

const testUser = int64(7)

func TestRankRequiresPreference(t *testing.T) {
	svc := newTestService(newMemStore(), installedIndex())
	_, err := svc.Rank(context.Background(), testUser, 10)
	if !errors.Is(err, domain.ErrPreferenceRequired) {
		t.Errorf("expected ErrPreferenceRequired, got %v", err)
	}
}

func TestRankSimilarityPhaseOrdering(t *testing.T) {
	store := newMemStore()
	store.items = []domain.Item{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	store.prefs[testUser] = &domain.UserPreference{UserID: testUser}
	store.interactions = []domain.Interaction{
		{UserID: testUser, ItemID: 1, Kind: domain.InteractionRate, Rating: 5},
		{UserID: testUser, ItemID: 2, Kind: domain.InteractionRate, Rating: 4},
	}
	index := installedIndex(
		domain.SimilarityEdge{ItemA: 1, ItemB: 3, Score: 0.8},
		domain.SimilarityEdge{ItemA: 2, ItemB: 4, Score: 0.6},
	)

	recs, err := newTestService(store, index).Rank(context.Background(), testUser, 2)
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].Item.ID != 3 || recs[0].Score != 0.8 || recs[0].Reason != domain.ReasonSimilarToRated {
		t.Errorf("expected item 3 (0.8, similar) first, got %+v", recs[0])
	}
	if recs[1].Item.ID != 4 || recs[1].Score != 0.6 || recs[1].Reason != domain.ReasonSimilarToRated {
		t.Errorf("expected item 4 (0.6, similar) second, got %+v", recs[1])
	}
}

func TestRankSimilarityExcludesInteracted(t *testing.T) {
	store := newMemStore()
	store.items = []domain.Item{{ID: 1}, {ID: 2}, {ID: 3}}
	store.prefs[testUser] = &domain.UserPreference{UserID: testUser}
	store.interactions = []domain.Interaction{
		{UserID: testUser, ItemID: 1, Kind: domain.InteractionRate, Rating: 5},
		{UserID: testUser, ItemID: 2, Kind: domain.InteractionView},
	}
	index := installedIndex(
		domain.SimilarityEdge{ItemA: 1, ItemB: 2, Score: 0.9},
		domain.SimilarityEdge{ItemA: 1, ItemB: 3, Score: 0.5},
	)

	recs, err := newTestService(store, index).Rank(context.Background(), testUser, 10)
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	for _, r := range recs {
		if r.Item.ID == 2 && r.Reason == domain.ReasonSimilarToRated {
			t.Errorf("viewed item must not come back via similarity: %+v", r)
		}
	}
	if len(recs) == 0 || recs[0].Item.ID != 3 {
		t.Errorf("expected item 3 as the only similarity hit, got %v", recs)
	}
}

func TestRankPopularityFallback(t *testing.T) {
	store := newMemStore()
	store.items = []domain.Item{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	store.prefs[testUser] = &domain.UserPreference{UserID: testUser}
	store.interactions = []domain.Interaction{
		{UserID: 8, ItemID: 1, Kind: domain.InteractionRate, Rating: 5},
		{UserID: 9, ItemID: 1, Kind: domain.InteractionRate, Rating: 4},
		{UserID: 8, ItemID: 2, Kind: domain.InteractionRate, Rating: 4},
		{UserID: 9, ItemID: 3, Kind: domain.InteractionRate, Rating: 3},
	}

	recs, err := newTestService(store, installedIndex()).Rank(context.Background(), testUser, 10)
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 popular items, got %d: %v", len(recs), recs)
	}
	if recs[0].Item.ID != 1 || recs[0].Score != 4.5 || recs[0].Reason != domain.ReasonPopular {
		t.Errorf("expected item 1 (4.5, popular) first, got %+v", recs[0])
	}
	if recs[1].Item.ID != 2 || recs[1].Score != 4.0 {
		t.Errorf("expected item 2 (4.0) second, got %+v", recs[1])
	}
}

func TestRankCategoryPhase(t *testing.T) {
	store := newMemStore()
	store.items = []domain.Item{
		{ID: 1, Category: "korean"},
		{ID: 2, Category: "italian"},
		{ID: 3, Category: "korean"},
	}
	store.prefs[testUser] = &domain.UserPreference{
		UserID:             testUser,
		FavoriteCategories: []string{"korean"},
	}

	recs, err := newTestService(store, installedIndex()).Rank(context.Background(), testUser, 10)
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 category items, got %d", len(recs))
	}
	for i, want := range []int64{1, 3} {
		if recs[i].Item.ID != want || recs[i].Score != categoryScore || recs[i].Reason != domain.ReasonFavoriteCategory {
			t.Errorf("entry %d: expected item %d with fixed score, got %+v", i, want, recs[i])
		}
	}
}

func TestRankDedupAcrossPhases(t *testing.T) {
	store := newMemStore()
	store.items = []domain.Item{
		{ID: 1},
		{ID: 2, Category: "korean"},
		{ID: 3, Category: "korean"},
	}
	store.prefs[testUser] = &domain.UserPreference{
		UserID:             testUser,
		FavoriteCategories: []string{"korean"},
	}
	store.interactions = []domain.Interaction{
		{UserID: testUser, ItemID: 1, Kind: domain.InteractionRate, Rating: 5},
		// item 2 is also popular and in a favorite category
		{UserID: 8, ItemID: 2, Kind: domain.InteractionRate, Rating: 5},
	}
	index := installedIndex(domain.SimilarityEdge{ItemA: 1, ItemB: 2, Score: 0.9})

	recs, err := newTestService(store, index).Rank(context.Background(), testUser, 10)
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}

	seen := make(map[int64]int)
	for _, r := range recs {
		seen[r.Item.ID]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("item %d recommended %d times", id, n)
		}
	}
	// first phase wins the duplicate
	if recs[0].Item.ID != 2 || recs[0].Reason != domain.ReasonSimilarToRated {
		t.Errorf("expected item 2 claimed by the similarity phase, got %+v", recs[0])
	}
}

func TestRankHonorsMaxResults(t *testing.T) {
	store := newMemStore()
	for i := int64(1); i <= 30; i++ {
		store.items = append(store.items, domain.Item{ID: i, Category: "korean"})
	}
	store.prefs[testUser] = &domain.UserPreference{
		UserID:             testUser,
		FavoriteCategories: []string{"korean"},
	}

	recs, err := newTestService(store, installedIndex()).Rank(context.Background(), testUser, 5)
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	if len(recs) > 5 {
		t.Errorf("expected at most 5 results, got %d", len(recs))
	}
}

func TestRankMaxCookingTimeExcludesAllPhases(t *testing.T) {
	store := newMemStore()
	store.items = []domain.Item{
		{ID: 1, CookingTime: 10},
		{ID: 5, CookingTime: 30, Category: "korean"}, // over the bound
	}
	store.prefs[testUser] = &domain.UserPreference{
		UserID:             testUser,
		MaxCookingTime:     20,
		FavoriteCategories: []string{"korean"},
	}
	store.interactions = []domain.Interaction{
		{UserID: testUser, ItemID: 1, Kind: domain.InteractionRate, Rating: 5},
		{UserID: 8, ItemID: 5, Kind: domain.InteractionRate, Rating: 5},
	}
	index := installedIndex(domain.SimilarityEdge{ItemA: 1, ItemB: 5, Score: 0.9})

	recs, err := newTestService(store, index).Rank(context.Background(), testUser, 10)
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	for _, r := range recs {
		if r.Item.ID == 5 {
			t.Errorf("item over the cooking-time bound leaked through phase %q", r.Reason)
		}
	}
}

func TestRankPersistsRecommendationRecords(t *testing.T) {
	store := newMemStore()
	store.items = []domain.Item{{ID: 1}, {ID: 2}}
	store.prefs[testUser] = &domain.UserPreference{UserID: testUser}
	store.interactions = []domain.Interaction{
		{UserID: 8, ItemID: 1, Kind: domain.InteractionRate, Rating: 5},
		{UserID: 8, ItemID: 2, Kind: domain.InteractionRate, Rating: 4},
	}
	svc := newTestService(store, installedIndex())

	recs, err := svc.Rank(context.Background(), testUser, 10)
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	if len(store.recs) != len(recs) {
		t.Fatalf("expected %d persisted records, got %d", len(recs), len(store.recs))
	}
	for i, r := range store.recs {
		if r.UserID != testUser || r.Interacted {
			t.Errorf("record %d: bad user or interacted flag: %+v", i, r)
		}
		if r.ID != recs[i].RecommendationID || r.ItemID != recs[i].Item.ID || r.Reason != recs[i].Reason {
			t.Errorf("record %d does not match returned entry: %+v vs %+v", i, r, recs[i])
		}
	}

	// A second rank re-evaluates and logs again for the same item set.
	again, err := svc.Rank(context.Background(), testUser, 10)
	if err != nil {
		t.Fatalf("second rank failed: %v", err)
	}
	if len(again) != len(recs) {
		t.Errorf("expected same result size, got %d vs %d", len(again), len(recs))
	}
	if len(store.recs) != 2*len(recs) {
		t.Errorf("expected records logged on every rank, got %d", len(store.recs))
	}
}

func TestRankRetriesStaleIndexOnce(t *testing.T) {
	store := newMemStore()
	store.items = []domain.Item{{ID: 1}, {ID: 2}}
	store.prefs[testUser] = &domain.UserPreference{UserID: testUser}
	store.interactions = []domain.Interaction{
		{UserID: testUser, ItemID: 1, Kind: domain.InteractionRate, Rating: 5},
	}
	inner := installedIndex(domain.SimilarityEdge{ItemA: 1, ItemB: 2, Score: 0.9})

	// One failure: retry succeeds.
	recs, err := newTestService(store, &flakyIndex{inner: inner, failures: 1}).
		Rank(context.Background(), testUser, 10)
	if err != nil {
		t.Fatalf("rank should survive one stale lookup: %v", err)
	}
	if len(recs) != 1 || recs[0].Item.ID != 2 {
		t.Errorf("expected item 2 from the retried lookup, got %v", recs)
	}

	// Persistent staleness surfaces.
	_, err = newTestService(store, &flakyIndex{inner: inner, failures: 2}).
		Rank(context.Background(), testUser, 10)
	if !errors.Is(err, domain.ErrStaleIndex) {
		t.Errorf("expected ErrStaleIndex after retry, got %v", err)
	}
}

func TestRankZeroVectorItemFallsBackToPopularity(t *testing.T) {
	// Item 3 has no similarity text: it gets no edges from the builder but
	// can still surface through popularity.
	edges := (&similarity.Builder{}).Build([]similarity.Document{
		{ItemID: 1, Text: "tomato basil pasta"},
		{ItemID: 2, Text: "tomato basil"},
		{ItemID: 3, Text: ""},
	})
	index := similarity.NewIndex()
	index.Install(uuid.New(), edges)

	store := newMemStore()
	store.items = []domain.Item{{ID: 1}, {ID: 2}, {ID: 3}}
	store.prefs[testUser] = &domain.UserPreference{UserID: testUser}
	store.interactions = []domain.Interaction{
		{UserID: testUser, ItemID: 1, Kind: domain.InteractionRate, Rating: 5},
		{UserID: 8, ItemID: 3, Kind: domain.InteractionRate, Rating: 5},
	}

	recs, err := newTestService(store, index).Rank(context.Background(), testUser, 10)
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	var found *domain.ScoredItem
	for i := range recs {
		if recs[i].Item.ID == 3 {
			found = &recs[i]
		}
	}
	if found == nil {
		t.Fatal("zero-vector item should surface via popularity")
	}
	if found.Reason != domain.ReasonPopular {
		t.Errorf("expected popularity reason, got %q", found.Reason)
	}
}

func TestRecordInteractionUpsertRoundTrip(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, installedIndex())
	ctx := context.Background()

	if err := svc.RecordInteraction(ctx, domain.Interaction{UserID: testUser, ItemID: 1, Kind: domain.InteractionView}); err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if err := svc.RecordInteraction(ctx, domain.Interaction{UserID: testUser, ItemID: 1, Kind: domain.InteractionRate, Rating: 5}); err != nil {
		t.Fatalf("rate failed: %v", err)
	}

	rated, err := svc.ListInteractions(ctx, testUser, domain.InteractionQuery{Kind: domain.InteractionRate})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(rated) != 1 || rated[0].Rating != 5 {
		t.Fatalf("expected one rate row with rating 5, got %v", rated)
	}

	// Re-rating overwrites, it does not duplicate.
	if err := svc.RecordInteraction(ctx, domain.Interaction{UserID: testUser, ItemID: 1, Kind: domain.InteractionRate, Rating: 3}); err != nil {
		t.Fatalf("re-rate failed: %v", err)
	}
	rated, _ = svc.ListInteractions(ctx, testUser, domain.InteractionQuery{Kind: domain.InteractionRate})
	if len(rated) != 1 || rated[0].Rating != 3 {
		t.Fatalf("expected the single rate row updated to 3, got %v", rated)
	}

	all, _ := svc.ListInteractions(ctx, testUser, domain.InteractionQuery{})
	if len(all) != 2 {
		t.Errorf("expected exactly two rows (view + rate), got %d", len(all))
	}
}

func TestRecordInteractionValidation(t *testing.T) {
	svc := newTestService(newMemStore(), installedIndex())
	ctx := context.Background()

	cases := []domain.Interaction{
		{UserID: testUser, ItemID: 1, Kind: domain.InteractionView, Rating: 4},
		{UserID: testUser, ItemID: 1, Kind: domain.InteractionRate},
		{UserID: testUser, ItemID: 1, Kind: domain.InteractionRate, Rating: 6},
		{UserID: testUser, ItemID: 1, Kind: "like"},
	}
	for i, in := range cases {
		if err := svc.RecordInteraction(ctx, in); !errors.Is(err, domain.ErrInvalidInteraction) {
			t.Errorf("case %d: expected ErrInvalidInteraction, got %v", i, err)
		}
	}
}

func TestMarkInteracted(t *testing.T) {
	store := newMemStore()
	store.items = []domain.Item{{ID: 1}, {ID: 2}}
	store.prefs[testUser] = &domain.UserPreference{UserID: testUser}
	store.interactions = []domain.Interaction{
		{UserID: 8, ItemID: 2, Kind: domain.InteractionRate, Rating: 5},
	}
	svc := newTestService(store, installedIndex())
	ctx := context.Background()

	recs, err := svc.Rank(ctx, testUser, 10)
	if err != nil || len(recs) == 0 {
		t.Fatalf("rank failed: %v", err)
	}
	recID := recs[0].RecommendationID

	if err := svc.MarkInteracted(ctx, testUser, recID, domain.InteractionSave, 0); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	rec, err := store.GetForUser(ctx, recID, testUser)
	if err != nil || !rec.Interacted {
		t.Errorf("expected interacted flag set, got %+v (err %v)", rec, err)
	}
	saved, _ := svc.ListInteractions(ctx, testUser, domain.InteractionQuery{Kind: domain.InteractionSave})
	if len(saved) != 1 || saved[0].ItemID != recs[0].Item.ID {
		t.Errorf("expected the reaction forwarded to the interaction store, got %v", saved)
	}
}

func TestMarkInteractedOwnership(t *testing.T) {
	store := newMemStore()
	store.items = []domain.Item{{ID: 1}}
	store.prefs[testUser] = &domain.UserPreference{UserID: testUser, FavoriteCategories: []string{"korean"}}
	store.items[0].Category = "korean"
	svc := newTestService(store, installedIndex())
	ctx := context.Background()

	recs, err := svc.Rank(ctx, testUser, 10)
	if err != nil || len(recs) == 0 {
		t.Fatalf("rank failed: %v", err)
	}

	otherUser := int64(99)
	if err := svc.MarkInteracted(ctx, otherUser, recs[0].RecommendationID, domain.InteractionSave, 0); !errors.Is(err, domain.ErrRecommendationNotFound) {
		t.Errorf("foreign recommendation must be NotFound, got %v", err)
	}
	if err := svc.MarkInteracted(ctx, testUser, uuid.New(), domain.InteractionSave, 0); !errors.Is(err, domain.ErrRecommendationNotFound) {
		t.Errorf("unknown id must be NotFound, got %v", err)
	}

	// Invalid reaction leaves the flag untouched.
	if err := svc.MarkInteracted(ctx, testUser, recs[0].RecommendationID, domain.InteractionRate, 0); !errors.Is(err, domain.ErrInvalidInteraction) {
		t.Errorf("expected ErrInvalidInteraction, got %v", err)
	}
	rec, _ := store.GetForUser(ctx, recs[0].RecommendationID, testUser)
	if rec.Interacted {
		t.Error("invalid reaction must not flip the interacted flag")
	}
}

func TestRankBatch(t *testing.T) {
	store := newMemStore()
	store.items = []domain.Item{{ID: 1, Category: "korean"}}
	store.prefs[1] = &domain.UserPreference{UserID: 1, FavoriteCategories: []string{"korean"}}
	store.prefs[2] = &domain.UserPreference{UserID: 2, FavoriteCategories: []string{"italian"}}
	svc := newTestService(store, installedIndex())

	resp, err := svc.RankBatch(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if resp.TotalUsers != 2 || len(resp.Results) != 2 {
		t.Fatalf("expected 2 users processed, got %+v", resp.Summary)
	}
	if resp.Summary.SuccessCount != 2 {
		t.Errorf("both users have preferences, expected 2 successes: %+v", resp.Summary)
	}
}
