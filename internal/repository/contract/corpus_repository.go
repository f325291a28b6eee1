package contract

import (
	"context"

	"code-assistant-be/internal/entity"
)

// CorpusRepository is the Postgres-backed corpus source. It serves one bulk
// read at startup (and on reload); the in-memory index answers queries after
// that.
type CorpusRepository interface {
	UpsertBulk(ctx context.Context, items []entity.CorpusItem, embeddingModel string) error
	FindAllByModel(ctx context.Context, embeddingModel string) ([]entity.CorpusItem, error)
	Count(ctx context.Context) (int64, error)
}
