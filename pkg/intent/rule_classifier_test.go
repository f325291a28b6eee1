package intent

import (
	"context"
	"testing"
)

func TestRuleClassifier(t *testing.T) {
	c := NewRuleClassifier(0.4)
	ctx := context.Background()

	tests := []struct {
		name      string
		utterance string
		want      Intent
	}{
		{"create request", "Create a pandas dataframe", IntentCodeSearch},
		{"how do i", "How do I read a CSV file into memory?", IntentCodeSearch},
		{"find code", "find code that sorts a list of dicts", IntentCodeSearch},
		{"explain named function", "Explain pandas.read_csv()", IntentFunctionExplanation},
		{"understanding request", "Give me a better understanding of seaborn.pairplot()", IntentFunctionExplanation},
		{"what does", "what does os.path.join do", IntentFunctionExplanation},
		{"empty", "   ", IntentUnknown},
		{"smalltalk", "hello there", IntentUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(ctx, tt.utterance)
			if got.Intent != tt.want {
				t.Errorf("Classify(%q) = %s (%.2f), want %s", tt.utterance, got.Intent, got.Confidence, tt.want)
			}
		})
	}
}

func TestRuleClassifierDeterministic(t *testing.T) {
	c := NewRuleClassifier(0.4)
	ctx := context.Background()

	first := c.Classify(ctx, "explain seaborn.pairplot()")
	for i := 0; i < 20; i++ {
		if got := c.Classify(ctx, "explain seaborn.pairplot()"); got != first {
			t.Fatalf("classification changed on call %d: %+v vs %+v", i, got, first)
		}
	}
}

func TestExtractFunctionToken(t *testing.T) {
	tests := []struct {
		utterance string
		want      string
	}{
		{"Explain pandas.read_csv()", "pandas.read_csv"},
		{"what is seaborn.pairplot", "seaborn.pairplot"},
		{"tell me about read_csv()", "read_csv"},
		{"explain the second one", ""},
		{"how do I sort a list", ""},
	}
	for _, tt := range tests {
		if got := ExtractFunctionToken(tt.utterance); got != tt.want {
			t.Errorf("ExtractFunctionToken(%q) = %q, want %q", tt.utterance, got, tt.want)
		}
	}
}
