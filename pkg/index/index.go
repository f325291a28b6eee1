// Package index implements exhaustive cosine-similarity search over the
// corpus embeddings. The corpus is small (tens of thousands of items), so a
// brute-force O(N*D) scan beats the complexity of an approximate-NN structure.
package index

import (
	"math"
	"sort"

	"code-assistant-be/internal/entity"
	"code-assistant-be/internal/pkg/apperrors"
)

// Index holds L2-normalized vectors aligned 1:1 with item ids. It is
// immutable after Build; a new snapshot requires a full rebuild (see Holder).
type Index struct {
	dimension int
	ids       []string
	vectors   [][]float32
}

// Build validates and indexes the corpus embeddings. Every vector must share
// the same dimensionality; a violation aborts the build so callers never
// observe a partially-built index.
func Build(items []entity.CorpusItem) (*Index, error) {
	if len(items) == 0 {
		return nil, apperrors.MalformedSnapshotf("cannot build index from empty corpus")
	}

	dim := len(items[0].Embedding)
	if dim == 0 {
		return nil, apperrors.MalformedSnapshotf("item %q has an empty embedding", items[0].Id)
	}

	idx := &Index{
		dimension: dim,
		ids:       make([]string, len(items)),
		vectors:   make([][]float32, len(items)),
	}

	for i, item := range items {
		if len(item.Embedding) != dim {
			return nil, apperrors.InvalidArgumentf("item %q has dimension %d, index expects %d: %w",
				item.Id, len(item.Embedding), dim, apperrors.ErrDimensionMismatch)
		}
		idx.ids[i] = item.Id
		idx.vectors[i] = Normalize(item.Embedding)
	}

	return idx, nil
}

// Dimension returns the uniform vector dimensionality D.
func (idx *Index) Dimension() int { return idx.dimension }

// Size returns the number of indexed items.
func (idx *Index) Size() int { return len(idx.ids) }

// Query scores every indexed vector against the query vector and returns the
// top-k results sorted by descending similarity, ties broken by ascending
// item id. Returns exactly min(k, N) results.
func (idx *Index) Query(vector []float32, k int) ([]entity.SearchResult, error) {
	if k <= 0 {
		return nil, apperrors.InvalidArgumentf("k must be positive, got %d", k)
	}
	if len(vector) != idx.dimension {
		return nil, apperrors.InvalidArgumentf("query vector has dimension %d, index expects %d: %w",
			len(vector), idx.dimension, apperrors.ErrDimensionMismatch)
	}

	query := Normalize(vector)

	// Both sides are unit length, so the dot product IS the cosine similarity.
	results := make([]entity.SearchResult, len(idx.ids))
	for i, vec := range idx.vectors {
		results[i] = entity.SearchResult{
			ItemId: idx.ids[i],
			Score:  dot(query, vec),
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ItemId < results[j].ItemId
	})

	if k > len(results) {
		k = len(results)
	}
	results = results[:k]
	for i := range results {
		results[i].Rank = i
	}
	return results, nil
}

// Normalize returns a unit-length copy of vec. Embedding magnitudes carry no
// signal for this domain; only direction matters.
func Normalize(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
