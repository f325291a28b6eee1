// Offline embedding tool. Reads the corpus JSONL, embeds every item with the
// configured provider, and writes the aligned vectors file the server loads
// at startup. With -db it also upserts the corpus into Postgres so replicas
// can use CORPUS_SOURCE=postgres.
package main

import (
	"context"
	"flag"
	"os"

	"code-assistant-be/internal/config"
	"code-assistant-be/internal/repository/implementation"
	"code-assistant-be/pkg/corpus"
	"code-assistant-be/pkg/database"
	"code-assistant-be/pkg/embedding"
	"code-assistant-be/pkg/embedding/jina"
	"code-assistant-be/pkg/utils"

	"github.com/fatih/color"
)

const maxEmbedInput = 8000 // characters, conservative for 2k-token models

func main() {
	corpusPath := flag.String("corpus", "", "corpus JSONL path (default from CORPUS_PATH)")
	vectorsPath := flag.String("out", "", "vectors output path (default from CORPUS_VECTORS_PATH)")
	toDB := flag.Bool("db", false, "also upsert corpus into Postgres")
	flag.Parse()

	cfg := config.Load()
	if *corpusPath == "" {
		*corpusPath = cfg.Corpus.CorpusPath
	}
	if *vectorsPath == "" {
		*vectorsPath = cfg.Corpus.VectorsPath
	}

	var provider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	case "jina":
		provider = jina.NewJinaProvider(cfg.Keys.Jina)
	default:
		provider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	color.Cyan("🚀 Embedding corpus %s with %s\n", *corpusPath, provider.Model())

	items, err := corpus.ReadCorpus(*corpusPath)
	if err != nil {
		color.Red("Failed to read corpus: %v", err)
		os.Exit(1)
	}
	color.Yellow("Read %d corpus items", len(items))

	vf := &corpus.VectorsFile{
		Model:   provider.Model(),
		Vectors: make([][]float32, len(items)),
	}

	for i := range items {
		// Embed text and docstring together: the query side asks in natural
		// language, and the docstring is what matches it.
		input := items[i].Text
		if items[i].Doc != "" {
			input = items[i].Doc + "\n\n" + items[i].Text
		}
		// Embedding models have input limits; a long snippet is represented
		// by its head, which carries the signature and docstring.
		if len(input) > maxEmbedInput {
			input = utils.HeadRunes(input, maxEmbedInput)
		}

		resp, err := provider.Generate(input, "RETRIEVAL_DOCUMENT")
		if err != nil {
			color.Red("Failed to embed %s: %v", items[i].Id, err)
			os.Exit(1)
		}
		vf.Vectors[i] = resp.Embedding.Values
		items[i].Embedding = resp.Embedding.Values

		if vf.Dim == 0 {
			vf.Dim = len(resp.Embedding.Values)
		}
		if (i+1)%25 == 0 {
			color.Yellow("  ... %d/%d", i+1, len(items))
		}
	}

	if err := corpus.WriteVectors(*vectorsPath, vf); err != nil {
		color.Red("Failed to write vectors: %v", err)
		os.Exit(1)
	}
	color.Green("✅ Wrote %d vectors (%d dims) to %s", len(vf.Vectors), vf.Dim, *vectorsPath)

	if *toDB {
		if cfg.Database.Connection == "" {
			color.Red("-db requires DB_CONNECTION_STRING")
			os.Exit(1)
		}
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			color.Red("Failed to connect to Postgres: %v", err)
			os.Exit(1)
		}
		repo := implementation.NewCorpusRepository(db)
		if err := repo.UpsertBulk(context.Background(), items, provider.Model()); err != nil {
			color.Red("Failed to upsert corpus: %v", err)
			os.Exit(1)
		}
		color.Green("✅ Upserted %d items into corpus_items", len(items))
	}
}
