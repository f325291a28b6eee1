package service

import (
	"context"
	"fmt"

	"code-assistant-be/internal/entity"
	"code-assistant-be/internal/pkg/apperrors"
	"code-assistant-be/internal/repository/contract"
	"code-assistant-be/pkg/corpus"
)

// CorpusLoader abstracts where the corpus snapshot comes from. The indexer
// does not care whether items arrive from disk or Postgres, only that every
// item carries an embedding from the expected model.
type CorpusLoader interface {
	Load(ctx context.Context) ([]entity.CorpusItem, error)
}

// FileCorpusLoader reads the JSONL corpus and the aligned vectors file.
type FileCorpusLoader struct {
	CorpusPath  string
	VectorsPath string
	Model       string
}

func (l *FileCorpusLoader) Load(ctx context.Context) ([]entity.CorpusItem, error) {
	return corpus.LoadSnapshot(l.CorpusPath, l.VectorsPath, l.Model)
}

// PostgresCorpusLoader reads the corpus from the corpus_items table, filtered
// to the configured embedding model so a stale re-embedding never mixes in.
type PostgresCorpusLoader struct {
	Repo  contract.CorpusRepository
	Model string
}

func (l *PostgresCorpusLoader) Load(ctx context.Context) ([]entity.CorpusItem, error) {
	items, err := l.Repo.FindAllByModel(ctx, l.Model)
	if err != nil {
		return nil, fmt.Errorf("load corpus from postgres: %w", err)
	}
	if len(items) == 0 {
		return nil, apperrors.MalformedSnapshotf("no corpus items for embedding model %q", l.Model)
	}
	return items, nil
}
