package intent

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"code-assistant-be/pkg/llm"
)

type stubProvider struct {
	response string
	err      error
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.response, s.err
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestLLMClassifierParsesJSON(t *testing.T) {
	c := NewLLMClassifier(
		&stubProvider{response: `Here you go: {"intent": "function_explanation", "confidence": 0.92}`},
		NewRuleClassifier(0.4), 0.5, quietLogger())

	got := c.Classify(context.Background(), "explain pd.merge()")
	if got.Intent != IntentFunctionExplanation {
		t.Errorf("intent = %s, want function_explanation", got.Intent)
	}
	if got.Confidence != 0.92 {
		t.Errorf("confidence = %f", got.Confidence)
	}
}

func TestLLMClassifierBelowThreshold(t *testing.T) {
	c := NewLLMClassifier(
		&stubProvider{response: `{"intent": "code_search", "confidence": 0.3}`},
		NewRuleClassifier(0.4), 0.5, quietLogger())

	got := c.Classify(context.Background(), "hmm")
	if got.Intent != IntentUnknown {
		t.Errorf("intent = %s, want unknown below threshold", got.Intent)
	}
}

func TestLLMClassifierFallsBackOnError(t *testing.T) {
	c := NewLLMClassifier(
		&stubProvider{err: errors.New("connection refused")},
		NewRuleClassifier(0.4), 0.5, quietLogger())

	// The rule fallback still classifies the utterance.
	got := c.Classify(context.Background(), "find code that parses JSON")
	if got.Intent != IntentCodeSearch {
		t.Errorf("intent = %s, want code_search from fallback", got.Intent)
	}
}

func TestLLMClassifierNilLoggerFallsBack(t *testing.T) {
	c := NewLLMClassifier(
		&stubProvider{err: errors.New("connection refused")},
		NewRuleClassifier(0.4), 0.5, nil)

	got := c.Classify(context.Background(), "find code that parses JSON")
	if got.Intent != IntentCodeSearch {
		t.Errorf("intent = %s, want code_search from fallback", got.Intent)
	}
}

func TestLLMClassifierFallsBackOnGarbage(t *testing.T) {
	c := NewLLMClassifier(
		&stubProvider{response: "I cannot classify this."},
		NewRuleClassifier(0.4), 0.5, quietLogger())

	got := c.Classify(context.Background(), "explain seaborn.pairplot()")
	if got.Intent != IntentFunctionExplanation {
		t.Errorf("intent = %s, want function_explanation from fallback", got.Intent)
	}
}
