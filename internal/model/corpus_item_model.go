package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// CorpusItemModel mirrors one snapshot record plus its embedding. The vector
// column dimension must match the configured embedding model; nomic-embed-text
// emits 768 dimensions.
type CorpusItemModel struct {
	Id             string          `gorm:"type:text;primaryKey"`
	Text           string          `gorm:"type:text;not null"`
	Doc            string          `gorm:"type:text"`
	Kind           string          `gorm:"type:text;not null;default:'snippet'"`
	EmbeddingModel string          `gorm:"type:text;not null;index"`
	Embedding      pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (CorpusItemModel) TableName() string {
	return "corpus_items"
}
