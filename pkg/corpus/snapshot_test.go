package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"code-assistant-be/internal/entity"
	"code-assistant-be/internal/pkg/apperrors"
)

func writeSnapshot(t *testing.T, corpusLines string, vf *VectorsFile) (string, string) {
	t.Helper()
	dir := t.TempDir()

	corpusPath := filepath.Join(dir, "corpus.jsonl")
	if err := os.WriteFile(corpusPath, []byte(corpusLines), 0644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}

	vectorsPath := filepath.Join(dir, "vectors.json")
	if err := WriteVectors(vectorsPath, vf); err != nil {
		t.Fatalf("write vectors: %v", err)
	}
	return corpusPath, vectorsPath
}

func TestLoadSnapshot(t *testing.T) {
	corpusPath, vectorsPath := writeSnapshot(t,
		`{"id":"pandas.DataFrame","text":"class DataFrame","doc":"Two-dimensional data.","kind":"function"}
{"id":"util.snippet_1","text":"x = 1"}
`,
		&VectorsFile{
			Model:   "nomic-embed-text",
			Dim:     2,
			Vectors: [][]float32{{1, 0}, {0, 1}},
		})

	items, err := LoadSnapshot(corpusPath, vectorsPath, "nomic-embed-text")
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 items, got %d", len(items))
	}
	if items[0].Kind != entity.ItemKindFunction {
		t.Errorf("item 0 kind = %s", items[0].Kind)
	}
	// Missing kind defaults to snippet.
	if items[1].Kind != entity.ItemKindSnippet {
		t.Errorf("item 1 kind = %s, want snippet", items[1].Kind)
	}
	if len(items[0].Embedding) != 2 {
		t.Errorf("item 0 embedding dim = %d", len(items[0].Embedding))
	}
}

func TestLoadSnapshotModelMismatch(t *testing.T) {
	corpusPath, vectorsPath := writeSnapshot(t,
		`{"id":"a","text":"x"}`+"\n",
		&VectorsFile{Model: "text-embedding-004", Dim: 1, Vectors: [][]float32{{1}}})

	_, err := LoadSnapshot(corpusPath, vectorsPath, "nomic-embed-text")
	if !errors.Is(err, apperrors.ErrMalformedSnapshot) {
		t.Fatalf("want ErrMalformedSnapshot on model mismatch, got %v", err)
	}
}

func TestLoadSnapshotCountMismatch(t *testing.T) {
	corpusPath, vectorsPath := writeSnapshot(t,
		`{"id":"a","text":"x"}
{"id":"b","text":"y"}
`,
		&VectorsFile{Model: "m", Dim: 1, Vectors: [][]float32{{1}}})

	_, err := LoadSnapshot(corpusPath, vectorsPath, "m")
	if !errors.Is(err, apperrors.ErrMalformedSnapshot) {
		t.Fatalf("want ErrMalformedSnapshot on count mismatch, got %v", err)
	}
}

func TestLoadSnapshotUnknownKind(t *testing.T) {
	corpusPath, vectorsPath := writeSnapshot(t,
		`{"id":"a","text":"x","kind":"widget"}`+"\n",
		&VectorsFile{Model: "m", Dim: 1, Vectors: [][]float32{{1}}})

	_, err := LoadSnapshot(corpusPath, vectorsPath, "m")
	if !errors.Is(err, apperrors.ErrMalformedSnapshot) {
		t.Fatalf("want ErrMalformedSnapshot on unknown kind, got %v", err)
	}
}
