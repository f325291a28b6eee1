// Package explain turns a corpus item into a natural-language explanation by
// paraphrasing its documentation through an LLM.
package explain

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"code-assistant-be/internal/entity"
	"code-assistant-be/internal/pkg/apperrors"
	"code-assistant-be/pkg/llm"
)

// NoSourceMessage is returned verbatim when the item has neither a stored
// docstring nor explainable code.
const NoSourceMessage = "I could not explain this function since I don't have access to its source code."

const explainPrompt = `You are a programming assistant. Rephrase the following documentation of the function %s as a short, clear explanation for a developer. Keep it factual, do not invent behavior that is not described.

Documentation:
%s`

type Explainer struct {
	provider llm.LLMProvider
	timeout  time.Duration
	logger   *log.Logger
}

func NewExplainer(provider llm.LLMProvider, timeout time.Duration, logger *log.Logger) *Explainer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Explainer{
		provider: provider,
		timeout:  timeout,
		logger:   logger,
	}
}

// Explain produces an explanation for the item. The docstring is the source
// of truth; the LLM only rephrases it. When the item carries no documentation
// the canned no-source message is returned instead of guessing. A provider
// failure surfaces as ErrExplanationUnavailable so callers can degrade.
func (e *Explainer) Explain(ctx context.Context, item *entity.CorpusItem) (string, error) {
	doc := item.Doc
	if doc == "" {
		doc = ExtractDocstring(item.Text)
	}
	if doc == "" {
		return NoSourceMessage, nil
	}

	if e.provider == nil {
		// No LLM configured: serve the raw docstring rather than failing.
		return doc, nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	prompt := fmt.Sprintf(explainPrompt, item.Id, doc)
	resp, err := e.provider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		if e.logger != nil {
			e.logger.Printf("[WARN] LLM explanation for %s failed: %v", item.Id, err)
		}
		return "", fmt.Errorf("paraphrase %s: %w", item.Id, apperrors.ErrExplanationUnavailable)
	}

	answer := strings.TrimSpace(resp)
	if answer == "" {
		return "", fmt.Errorf("empty paraphrase for %s: %w", item.Id, apperrors.ErrExplanationUnavailable)
	}
	return answer, nil
}
