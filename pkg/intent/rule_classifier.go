package intent

import (
	"context"
	"regexp"
	"strings"
)

// Function-like token: dotted identifier ("pd.DataFrame", "seaborn.pairplot")
// or a bare call ("read_csv()").
var functionTokenPattern = regexp.MustCompile(`[A-Za-z_][\w]*(\.[A-Za-z_][\w]*)+(\(\))?|[A-Za-z_][\w]*\(\)`)

var searchKeywords = []string{
	"find", "search", "look for", "show me", "give me code", "code for",
	"snippet", "example", "how do i", "how to", "create", "construct",
	"build", "implement", "write",
}

var explainKeywords = []string{
	"explain", "explanation", "what does", "what is", "understanding",
	"understand", "describe", "tell me about", "meaning of", "how does",
	"documentation for", "docs for",
}

// RuleClassifier is a deterministic keyword scorer. It is the default
// classifier and the fallback behind the LLM-backed one: same utterance in,
// same result out, no external calls.
type RuleClassifier struct {
	threshold float64
}

// NewRuleClassifier creates a classifier that returns IntentUnknown when the
// best score falls below threshold.
func NewRuleClassifier(threshold float64) *RuleClassifier {
	return &RuleClassifier{threshold: threshold}
}

func (c *RuleClassifier) Classify(_ context.Context, utterance string) Result {
	lowered := strings.ToLower(strings.TrimSpace(utterance))
	if lowered == "" {
		return Result{Intent: IntentUnknown}
	}

	searchScore := keywordScore(lowered, searchKeywords)
	explainScore := keywordScore(lowered, explainKeywords)

	// A function-like token is strong evidence the user names a specific API.
	if functionTokenPattern.MatchString(utterance) {
		explainScore += 0.35
	}

	switch {
	case explainScore >= searchScore && explainScore >= c.threshold:
		return Result{Intent: IntentFunctionExplanation, Confidence: clamp(explainScore)}
	case searchScore > explainScore && searchScore >= c.threshold:
		return Result{Intent: IntentCodeSearch, Confidence: clamp(searchScore)}
	default:
		higher := searchScore
		if explainScore > higher {
			higher = explainScore
		}
		return Result{Intent: IntentUnknown, Confidence: clamp(higher)}
	}
}

// keywordScore sums a fixed weight per matched keyword. Two keyword hits are
// already a confident classification.
func keywordScore(utterance string, keywords []string) float64 {
	var score float64
	for _, kw := range keywords {
		if strings.Contains(utterance, kw) {
			score += 0.4
		}
	}
	return score
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}

// ExtractFunctionToken returns the first function-like token of the
// utterance, with any trailing call parens stripped. Empty when none found.
func ExtractFunctionToken(utterance string) string {
	token := functionTokenPattern.FindString(utterance)
	return strings.TrimSuffix(token, "()")
}
