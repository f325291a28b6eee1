package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"code-assistant-be/pkg/llm"
)

// LLMClassifier asks the configured LLM to label the utterance. Temperature 0
// keeps the call deterministic for a fixed model snapshot. Any provider or
// parse failure falls back to the rule-based scorer, never an error.
type LLMClassifier struct {
	provider  llm.LLMProvider
	fallback  *RuleClassifier
	threshold float64
	logger    *log.Logger
}

func NewLLMClassifier(provider llm.LLMProvider, fallback *RuleClassifier, threshold float64, logger *log.Logger) *LLMClassifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LLMClassifier{
		provider:  provider,
		fallback:  fallback,
		threshold: threshold,
		logger:    logger,
	}
}

type llmIntentResponse struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

func (c *LLMClassifier) Classify(ctx context.Context, utterance string) Result {
	prompt := c.buildPrompt(utterance)

	response, err := c.provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		c.logger.Printf("[WARN] LLM intent classification failed, using rule fallback: %v", err)
		return c.fallback.Classify(ctx, utterance)
	}

	parsed, err := parseLLMIntent(response)
	if err != nil {
		c.logger.Printf("[WARN] LLM intent parse failed, using rule fallback: %v", err)
		return c.fallback.Classify(ctx, utterance)
	}

	if parsed.Confidence < c.threshold {
		return Result{Intent: IntentUnknown, Confidence: parsed.Confidence}
	}

	c.logger.Printf("[INTENT] Classified: %s (confidence %.2f)", parsed.Intent.String(), parsed.Confidence)
	return parsed
}

func (c *LLMClassifier) buildPrompt(utterance string) string {
	var sb strings.Builder
	sb.WriteString("You are an intent classifier for a code assistant. ")
	sb.WriteString("Classify the user message into exactly one intent:\n\n")
	sb.WriteString("code_search: the user wants code matching a description (e.g. 'find code that parses CSV')\n")
	sb.WriteString("function_explanation: the user wants a named function or API explained (e.g. 'explain pd.merge()')\n")
	sb.WriteString("unknown: neither fits\n\n")
	sb.WriteString("Respond with ONLY valid JSON:\n")
	sb.WriteString(`{"intent": "code_search|function_explanation|unknown", "confidence": 0.95}`)
	sb.WriteString("\n\nUser message:\n")
	sb.WriteString(utterance)
	return sb.String()
}

func parseLLMIntent(response string) (Result, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return Result{}, fmt.Errorf("no JSON found in response")
	}

	var parsed llmIntentResponse
	if err := json.Unmarshal([]byte(jsonContent), &parsed); err != nil {
		return Result{}, fmt.Errorf("JSON unmarshal failed: %w", err)
	}

	return Result{
		Intent:     ParseIntent(strings.ToLower(strings.TrimSpace(parsed.Intent))),
		Confidence: parsed.Confidence,
	}, nil
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")
	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}
	return response[startIdx : endIdx+1]
}
