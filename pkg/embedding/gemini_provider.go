package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const geminiEmbeddingModel = "text-embedding-004"

// GeminiProvider embeds text with the Google Generative Language API.
type GeminiProvider struct {
	apiKey string
	client *http.Client
}

func NewGeminiProvider(apiKey string) EmbeddingProvider {
	return &GeminiProvider{
		apiKey: apiKey,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *GeminiProvider) Model() string { return geminiEmbeddingModel }

type geminiRequestContentPart struct {
	Text string `json:"text"`
}

type geminiRequestContent struct {
	Parts []geminiRequestContentPart `json:"parts"`
}

type geminiEmbeddingRequest struct {
	Model    string               `json:"model"`
	Content  geminiRequestContent `json:"content"`
	TaskType string               `json:"task_type,omitempty"`
}

func (p *GeminiProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	body, err := json.Marshal(geminiEmbeddingRequest{
		Model: geminiEmbeddingModel,
		Content: geminiRequestContent{
			Parts: []geminiRequestContentPart{{Text: text}},
		},
		// Gemini distinguishes RETRIEVAL_QUERY from RETRIEVAL_DOCUMENT.
		TaskType: taskType,
	})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1/models/%s:embedContent",
		geminiEmbeddingModel,
	)
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from gemini response, code %d, body %s", res.StatusCode, string(raw))
	}

	var parsed EmbeddingResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}

	// Gemini does not return unit vectors; normalize before indexing.
	parsed.Embedding.Values = normalizeVector(parsed.Embedding.Values)
	return &parsed, nil
}
