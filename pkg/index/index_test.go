package index

import (
	"errors"
	"math"
	"testing"

	"code-assistant-be/internal/entity"
	"code-assistant-be/internal/pkg/apperrors"
)

func testItems() []entity.CorpusItem {
	return []entity.CorpusItem{
		{Id: "pandas.DataFrame", Embedding: []float32{1, 0, 0}},
		{Id: "pandas.Series", Embedding: []float32{0.9, 0.1, 0}},
		{Id: "seaborn.pairplot", Embedding: []float32{0, 1, 0}},
		{Id: "os.path.join", Embedding: []float32{0, 0, 1}},
	}
}

func TestBuildRejectsEmptyCorpus(t *testing.T) {
	_, err := Build(nil)
	if !errors.Is(err, apperrors.ErrMalformedSnapshot) {
		t.Fatalf("want ErrMalformedSnapshot, got %v", err)
	}
}

func TestBuildRejectsMixedDimensions(t *testing.T) {
	items := []entity.CorpusItem{
		{Id: "a", Embedding: []float32{1, 0}},
		{Id: "b", Embedding: []float32{1, 0, 0}},
	}
	_, err := Build(items)
	if !errors.Is(err, apperrors.ErrDimensionMismatch) {
		t.Fatalf("want ErrDimensionMismatch, got %v", err)
	}
}

func TestQueryOrdering(t *testing.T) {
	idx, err := Build(testItems())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	results, err := idx.Query([]float32{1, 0, 0}, 3)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("want 3 results, got %d", len(results))
	}
	if results[0].ItemId != "pandas.DataFrame" {
		t.Errorf("rank 0: want pandas.DataFrame, got %s", results[0].ItemId)
	}
	if results[1].ItemId != "pandas.Series" {
		t.Errorf("rank 1: want pandas.Series, got %s", results[1].ItemId)
	}
	for i, r := range results {
		if r.Rank != i {
			t.Errorf("result %d has rank %d", i, r.Rank)
		}
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("scores not descending at %d: %f > %f", i, results[i].Score, results[i-1].Score)
		}
	}
}

func TestQueryTieBreakByID(t *testing.T) {
	items := []entity.CorpusItem{
		{Id: "zzz", Embedding: []float32{1, 0}},
		{Id: "aaa", Embedding: []float32{1, 0}},
		{Id: "mmm", Embedding: []float32{1, 0}},
	}
	idx, err := Build(items)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	results, err := idx.Query([]float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	want := []string{"aaa", "mmm", "zzz"}
	for i, w := range want {
		if results[i].ItemId != w {
			t.Errorf("rank %d: want %s, got %s", i, w, results[i].ItemId)
		}
	}
}

func TestQueryReturnsMinKN(t *testing.T) {
	idx, err := Build(testItems())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	results, err := idx.Query([]float32{1, 0, 0}, 100)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("want all 4 items when k exceeds N, got %d", len(results))
	}
}

func TestQueryRejectsBadInput(t *testing.T) {
	idx, err := Build(testItems())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if _, err := idx.Query([]float32{1, 0, 0}, 0); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("k=0: want ErrInvalidArgument, got %v", err)
	}
	if _, err := idx.Query([]float32{1, 0}, 5); !errors.Is(err, apperrors.ErrDimensionMismatch) {
		t.Errorf("wrong dimension: want ErrDimensionMismatch, got %v", err)
	}
}

func TestQueryIsDeterministic(t *testing.T) {
	idx, err := Build(testItems())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	first, _ := idx.Query([]float32{0.5, 0.5, 0}, 4)
	for n := 0; n < 10; n++ {
		again, _ := idx.Query([]float32{0.5, 0.5, 0}, 4)
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("query not deterministic at rank %d", i)
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	vec := Normalize([]float32{3, 4})
	var mag float64
	for _, v := range vec {
		mag += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(mag)-1) > 1e-6 {
		t.Errorf("normalized magnitude = %f, want 1", math.Sqrt(mag))
	}

	// Zero vector stays untouched instead of dividing by zero.
	zero := Normalize([]float32{0, 0})
	if zero[0] != 0 || zero[1] != 0 {
		t.Errorf("zero vector changed: %v", zero)
	}
}
