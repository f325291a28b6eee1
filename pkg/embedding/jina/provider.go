// Package jina calls the Jina AI embeddings API (OpenAI-compatible shape).
package jina

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"code-assistant-be/pkg/embedding"
)

const (
	jinaEndpoint = "https://api.jina.ai/v1/embeddings"
	jinaModel    = "jina-embeddings-v2-base-en"
)

type JinaProvider struct {
	apiKey string
	client *http.Client
}

func NewJinaProvider(apiKey string) *JinaProvider {
	return &JinaProvider{
		apiKey: apiKey,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *JinaProvider) Model() string { return jinaModel }

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *JinaProvider) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	// The API takes a batch; a single text is a batch of one.
	body, err := json.Marshal(embeddingRequest{Model: jinaModel, Input: []string{text}})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, jinaEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jina request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jina api error (status %d): %s", resp.StatusCode, string(raw))
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("jina api returned error: %s", parsed.Error.Message)
	}
	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("empty embeddings from jina api")
	}

	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{
			Values: parsed.Data[0].Embedding,
		},
	}, nil
}
