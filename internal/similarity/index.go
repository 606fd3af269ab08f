package similarity

import (
	"sort"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/tastypick/recipe-recommender/internal/domain"
)

// Neighbor is one similarity partner of an item, direction already resolved.
type Neighbor struct {
	ItemID int64   `json:"item_id"`
	Score  float64 `json:"score"`
}

type snapshot struct {
	buildID   uuid.UUID
	neighbors map[int64][]Neighbor
}

// Index serves similarity lookups from an in-memory snapshot of the edge
// table. Rebuilds install a complete new snapshot atomically, so readers see
// either the old or the new table, never a half-updated one. Until the first
// snapshot is installed (or after Invalidate) lookups fail with
// domain.ErrStaleIndex.
type Index struct {
	snap atomic.Pointer[snapshot]
}

func NewIndex() *Index {
	return &Index{}
}

// Install replaces the served snapshot with one built from edges. Both edge
// directions are merged into each item's neighbor list, sorted by score
// descending with item id ascending as the tie-break.
func (ix *Index) Install(buildID uuid.UUID, edges []domain.SimilarityEdge) {
	neighbors := make(map[int64][]Neighbor)
	for _, e := range edges {
		neighbors[e.ItemA] = append(neighbors[e.ItemA], Neighbor{ItemID: e.ItemB, Score: e.Score})
		neighbors[e.ItemB] = append(neighbors[e.ItemB], Neighbor{ItemID: e.ItemA, Score: e.Score})
	}
	for _, list := range neighbors {
		sort.Slice(list, func(i, j int) bool {
			if list[i].Score != list[j].Score {
				return list[i].Score > list[j].Score
			}
			return list[i].ItemID < list[j].ItemID
		})
	}
	ix.snap.Store(&snapshot{buildID: buildID, neighbors: neighbors})
}

// Invalidate drops the served snapshot. Subsequent lookups return
// domain.ErrStaleIndex until Install is called again.
func (ix *Index) Invalidate() {
	ix.snap.Store(nil)
}

// Neighbors returns the similarity partners of itemID, best first. An item
// with no edges (including zero-vector items) returns an empty list, not an
// error.
func (ix *Index) Neighbors(itemID int64) ([]Neighbor, error) {
	s := ix.snap.Load()
	if s == nil {
		return nil, domain.ErrStaleIndex
	}
	return s.neighbors[itemID], nil
}

// BuildID reports the installed build, if any.
func (ix *Index) BuildID() (uuid.UUID, bool) {
	s := ix.snap.Load()
	if s == nil {
		return uuid.UUID{}, false
	}
	return s.buildID, true
}
