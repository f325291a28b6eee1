package implementation

import (
	"context"

	"code-assistant-be/internal/entity"
	"code-assistant-be/internal/model"
	"code-assistant-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CorpusRepositoryImpl struct {
	db *gorm.DB
}

func NewCorpusRepository(db *gorm.DB) contract.CorpusRepository {
	return &CorpusRepositoryImpl{db: db}
}

func (r *CorpusRepositoryImpl) UpsertBulk(ctx context.Context, items []entity.CorpusItem, embeddingModel string) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]model.CorpusItemModel, len(items))
	for i, item := range items {
		models[i] = model.CorpusItemModel{
			Id:             item.Id,
			Text:           item.Text,
			Doc:            item.Doc,
			Kind:           string(item.Kind),
			EmbeddingModel: embeddingModel,
			Embedding:      pgvector.NewVector(item.Embedding),
		}
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).CreateInBatches(models, 100).Error
}

func (r *CorpusRepositoryImpl) FindAllByModel(ctx context.Context, embeddingModel string) ([]entity.CorpusItem, error) {
	var models []model.CorpusItemModel
	err := r.db.WithContext(ctx).
		Where("embedding_model = ?", embeddingModel).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	items := make([]entity.CorpusItem, len(models))
	for i, m := range models {
		items[i] = entity.CorpusItem{
			Id:        m.Id,
			Text:      m.Text,
			Doc:       m.Doc,
			Kind:      entity.ItemKind(m.Kind),
			Embedding: m.Embedding.Slice(),
		}
	}
	return items, nil
}

func (r *CorpusRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CorpusItemModel{}).Count(&count).Error
	return count, err
}
