package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"code-assistant-be/internal/entity"
	"code-assistant-be/internal/pkg/apperrors"
)

// snapshotRecord is one line of the corpus JSONL file.
type snapshotRecord struct {
	Id   string `json:"id"`
	Text string `json:"text"`
	Doc  string `json:"doc,omitempty"`
	Kind string `json:"kind,omitempty"`
}

// VectorsFile is the precomputed embedding file written by cmd/embed-corpus.
// Vectors are aligned by position with the corpus JSONL records. The Model
// field records which embedding model produced them; queries embedded with a
// different model silently degrade retrieval, so the loader checks it.
type VectorsFile struct {
	Model   string      `json:"model"`
	Dim     int         `json:"dim"`
	Vectors [][]float32 `json:"vectors"`
}

// LoadSnapshot reads the corpus records and their aligned vectors from disk.
// expectedModel is the id of the online embedding model; a non-empty mismatch
// with the snapshot's recorded model fails the load.
func LoadSnapshot(corpusPath, vectorsPath, expectedModel string) ([]entity.CorpusItem, error) {
	records, err := readRecords(corpusPath)
	if err != nil {
		return nil, err
	}

	vectors, err := readVectors(vectorsPath)
	if err != nil {
		return nil, err
	}

	if expectedModel != "" && vectors.Model != "" && vectors.Model != expectedModel {
		return nil, apperrors.MalformedSnapshotf("snapshot embedded with model %q, provider uses %q",
			vectors.Model, expectedModel)
	}

	if len(vectors.Vectors) != len(records) {
		return nil, apperrors.MalformedSnapshotf("%d corpus records but %d vectors",
			len(records), len(vectors.Vectors))
	}

	items := make([]entity.CorpusItem, len(records))
	for i, rec := range records {
		vec := vectors.Vectors[i]
		if vectors.Dim > 0 && len(vec) != vectors.Dim {
			return nil, apperrors.MalformedSnapshotf("vector %d has dimension %d, file declares %d",
				i, len(vec), vectors.Dim)
		}

		kind, err := parseKind(rec)
		if err != nil {
			return nil, err
		}

		items[i] = entity.CorpusItem{
			Id:        rec.Id,
			Text:      rec.Text,
			Doc:       rec.Doc,
			Kind:      kind,
			Embedding: vec,
		}
	}

	return items, nil
}

func parseKind(rec snapshotRecord) (entity.ItemKind, error) {
	kind := entity.ItemKind(rec.Kind)
	switch kind {
	case entity.ItemKindFunction, entity.ItemKindSnippet, entity.ItemKindDoc:
		return kind, nil
	case "":
		return entity.ItemKindSnippet, nil
	default:
		return "", apperrors.MalformedSnapshotf("record %q has unknown kind %q", rec.Id, rec.Kind)
	}
}

// ReadCorpus reads just the corpus records, without embeddings. The offline
// embed tool uses this before any vectors file exists.
func ReadCorpus(path string) ([]entity.CorpusItem, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	items := make([]entity.CorpusItem, len(records))
	for i, rec := range records {
		kind, err := parseKind(rec)
		if err != nil {
			return nil, err
		}
		items[i] = entity.CorpusItem{
			Id:   rec.Id,
			Text: rec.Text,
			Doc:  rec.Doc,
			Kind: kind,
		}
	}
	return items, nil
}

func readRecords(path string) ([]snapshotRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus file: %w", err)
	}
	defer file.Close()

	var records []snapshotRecord
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec snapshotRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, apperrors.MalformedSnapshotf("line %d: %v", line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}

	return records, nil
}

func readVectors(path string) (*VectorsFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open vectors file: %w", err)
	}

	var vf VectorsFile
	if err := json.Unmarshal(raw, &vf); err != nil {
		return nil, apperrors.MalformedSnapshotf("vectors file: %v", err)
	}
	return &vf, nil
}

// WriteVectors persists the embedding file next to a corpus snapshot. Used by
// the offline embed-corpus tool.
func WriteVectors(path string, vf *VectorsFile) error {
	data, err := json.Marshal(vf)
	if err != nil {
		return fmt.Errorf("marshal vectors: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
