package session

import (
	"regexp"
	"strconv"
	"strings"

	"code-assistant-be/internal/pkg/apperrors"
)

// Ordered slice, not a map: "the first or the second one?" must resolve the
// same way on every call.
var ordinalWords = []struct {
	word string
	pos  int
}{
	{"first", 0}, {"second", 1}, {"third", 2}, {"fourth", 3}, {"fifth", 4},
	{"sixth", 5}, {"seventh", 6}, {"eighth", 7}, {"ninth", 8}, {"tenth", 9},
}

var pronounPhrases = []string{
	"that one", "this one", "that", "this", "it",
}

var numberPattern = regexp.MustCompile(`\b(\d{1,2})\b`)

// ResolveReference maps an ordinal or pronoun in the utterance to a corpus
// item id from the session's last result set. "second" resolves to position 1,
// a bare pronoun ("explain that one") to the top result, "last" to the final
// one. Fails with ErrNoPriorResult when no search turn has happened yet.
func (m *Manager) ResolveReference(sessionID, utterance string) (string, error) {
	session := m.GetOrCreate(sessionID)
	if len(session.LastResults) == 0 {
		return "", apperrors.ErrNoPriorResult
	}

	pos, ok := parsePosition(utterance, len(session.LastResults))
	if !ok {
		return "", apperrors.InvalidArgumentf("no result reference in %q", utterance)
	}
	if pos < 0 || pos >= len(session.LastResults) {
		return "", apperrors.NotFoundf("no result at position %d, only %d results", pos+1, len(session.LastResults))
	}

	return session.LastResults[pos], nil
}

// parsePosition extracts a 0-based result position from the utterance.
func parsePosition(utterance string, resultCount int) (int, bool) {
	lowered := strings.ToLower(utterance)

	// With several ordinals present, the one appearing earliest in the
	// utterance wins.
	earliest, pos := -1, 0
	for _, ord := range ordinalWords {
		if i := strings.Index(lowered, ord.word); i >= 0 && (earliest == -1 || i < earliest) {
			earliest, pos = i, ord.pos
		}
	}
	if earliest >= 0 {
		return pos, true
	}

	if strings.Contains(lowered, "last") {
		return resultCount - 1, true
	}

	if match := numberPattern.FindString(lowered); match != "" {
		n, err := strconv.Atoi(match)
		if err == nil && n > 0 {
			return n - 1, true
		}
	}

	// Bare pronouns point at the top-ranked result.
	for _, phrase := range pronounPhrases {
		if strings.Contains(lowered, phrase) {
			return 0, true
		}
	}

	return 0, false
}

// RefersToPriorResult reports whether the utterance points at an earlier
// result instead of naming a function outright.
func RefersToPriorResult(utterance string) bool {
	lowered := strings.ToLower(utterance)
	for _, ord := range ordinalWords {
		if strings.Contains(lowered, ord.word) {
			return true
		}
	}
	if strings.Contains(lowered, "last") {
		return true
	}
	for _, phrase := range pronounPhrases {
		if strings.Contains(lowered, " "+phrase) || strings.HasPrefix(lowered, phrase+" ") || lowered == phrase {
			return true
		}
	}
	return numberPattern.MatchString(lowered)
}
