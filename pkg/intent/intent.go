// Package intent classifies user utterances into the closed set of intents
// the assistant can act on.
package intent

import "context"

// Intent is the classified purpose of an utterance. Unknown is a first-class
// variant, not a sentinel string, so dispatch switches stay exhaustive.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentCodeSearch
	IntentFunctionExplanation
)

func (i Intent) String() string {
	switch i {
	case IntentCodeSearch:
		return "code_search"
	case IntentFunctionExplanation:
		return "function_explanation"
	default:
		return "unknown"
	}
}

// ParseIntent maps a label back to an Intent. Unrecognized labels are Unknown.
func ParseIntent(label string) Intent {
	switch label {
	case "code_search":
		return IntentCodeSearch
	case "function_explanation":
		return IntentFunctionExplanation
	default:
		return IntentUnknown
	}
}

// Result carries the classified intent and the classifier's confidence.
type Result struct {
	Intent     Intent
	Confidence float64
}

// Classifier maps a raw utterance to an intent. Implementations return
// IntentUnknown below their confidence threshold rather than failing; a
// classification is a pure call with no side effects to retry against.
type Classifier interface {
	Classify(ctx context.Context, utterance string) Result
}
