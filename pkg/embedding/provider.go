package embedding

// EmbeddingProvider defines the interface for generating text embeddings.
// The same provider (and model) embeds the corpus offline and utterances
// online; Model() exposes the model id so the snapshot loader can verify the
// two sides agree instead of silently degrading retrieval.
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
	Model() string
}

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}
