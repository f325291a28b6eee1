package integration

import (
	"log"
	"os"
	"testing"

	"code-assistant-be/pkg/embedding"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestOllamaEmbedding(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	if os.Getenv("OLLAMA_INTEGRATION") != "true" {
		t.Skip("Skipping integration test: OLLAMA_INTEGRATION not set")
	}

	provider := embedding.NewOllamaProvider(
		os.Getenv("OLLAMA_BASE_URL"),
		os.Getenv("EMBEDDING_MODEL"),
	)

	resp, err := provider.Generate("How do I read a CSV file?", "RETRIEVAL_QUERY")
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Embedding.Values)

	// Provider must return unit vectors
	var mag float64
	for _, v := range resp.Embedding.Values {
		mag += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, mag, 0.01)
}
