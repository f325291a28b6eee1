package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "nomic-embed-text"
)

// OllamaProvider embeds text with a local Ollama model.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOllamaProvider(baseURL string, model string) EmbeddingProvider {
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	if model == "" {
		model = defaultOllamaModel
	}
	return &OllamaProvider{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *OllamaProvider) Model() string { return p.model }

type ollamaEmbeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbeddingResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Generate embeds text. taskType is accepted for interface compatibility;
// nomic-style models do not distinguish query and document inputs.
func (p *OllamaProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	body, err := json.Marshal(ollamaEmbeddingRequest{Model: p.model, Prompt: text})
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Post(p.baseURL+"/api/embeddings", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama embedding error: %s", string(raw))
	}

	var parsed ollamaEmbeddingResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}

	// Ollama reports float64; the rest of the pipeline runs on float32.
	values := make([]float32, len(parsed.Embedding))
	for i, v := range parsed.Embedding {
		values[i] = float32(v)
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			// Unit length, so cosine similarity reduces to a dot product.
			Values: normalizeVector(values),
		},
	}, nil
}

// normalizeVector scales vec to unit length. A zero vector is returned as is.
func normalizeVector(vec []float32) []float32 {
	var sumSquares float64
	for _, v := range vec {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares == 0 {
		return vec
	}

	inv := 1 / math.Sqrt(sumSquares)
	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) * inv)
	}
	return normalized
}
