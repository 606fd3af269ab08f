package similarity

import (
	"math"
	"sort"

	"github.com/tastypick/recipe-recommender/internal/domain"
)

// Document is one corpus entry handed to the builder.
type Document struct {
	ItemID int64
	Text   string
}

// Builder vectorizes a corpus with TF-IDF and computes pairwise cosine
// similarity. Pairs at or below Threshold are dropped; the default threshold
// of 0 keeps every positive pair, which is fine for small corpora.
type Builder struct {
	Threshold float64
}

// vector is a sparse, L2-normalized term-weight map.
type vector map[string]float64

// Build computes one edge per unordered item pair with cosine similarity
// above the threshold. Edges are returned with ItemA < ItemB, ordered by
// (ItemA, ItemB) ascending. Items whose text normalizes to nothing get a
// zero vector and therefore no edges.
func (b *Builder) Build(docs []Document) []domain.SimilarityEdge {
	if len(docs) < 2 {
		return nil
	}

	// Deterministic pair ordering regardless of caller ordering.
	ordered := make([]Document, len(docs))
	copy(ordered, docs)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ItemID < ordered[j].ItemID })

	counts := make([]map[string]int, len(ordered))
	df := make(map[string]int)
	for i, doc := range ordered {
		tc := make(map[string]int)
		for _, tok := range Tokenize(doc.Text) {
			tc[tok]++
		}
		counts[i] = tc
		for term := range tc {
			df[term]++
		}
	}

	n := float64(len(ordered))
	idf := make(map[string]float64, len(df))
	for term, d := range df {
		idf[term] = math.Log((1+n)/(1+float64(d))) + 1
	}

	vectors := make([]vector, len(ordered))
	for i, tc := range counts {
		vectors[i] = normalize(tc, idf)
	}

	var edges []domain.SimilarityEdge
	for i := 0; i < len(ordered); i++ {
		if len(vectors[i]) == 0 {
			continue
		}
		for j := i + 1; j < len(ordered); j++ {
			score := dot(vectors[i], vectors[j])
			if score <= b.Threshold {
				continue
			}
			edges = append(edges, domain.SimilarityEdge{
				ItemA: ordered[i].ItemID,
				ItemB: ordered[j].ItemID,
				Score: score,
			})
		}
	}
	return edges
}

func normalize(counts map[string]int, idf map[string]float64) vector {
	v := make(vector, len(counts))
	var norm float64
	for term, c := range counts {
		w := float64(c) * idf[term]
		v[term] = w
		norm += w * w
	}
	if norm == 0 {
		return vector{}
	}
	norm = math.Sqrt(norm)
	for term := range v {
		v[term] /= norm
	}
	return v
}

// dot over L2-normalized vectors is the cosine similarity. Iterates the
// smaller map.
func dot(a, b vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for term, wa := range a {
		if wb, ok := b[term]; ok {
			sum += wa * wb
		}
	}
	return sum
}
