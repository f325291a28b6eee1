package explain

import (
	"regexp"
	"strings"
)

var tripleQuotePattern = regexp.MustCompile(`(?s)("""|''')(.*?)("""|''')`)

// ExtractDocstring pulls the documentation out of a stored code snippet. It
// understands Python triple-quoted docstrings and falls back to a leading
// comment block. Returns "" when the snippet carries no documentation.
func ExtractDocstring(code string) string {
	if match := tripleQuotePattern.FindStringSubmatch(code); match != nil {
		return strings.TrimSpace(match[2])
	}

	// Leading // or # comment block, stopping at the first code line.
	var lines []string
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(lines) > 0 {
				break
			}
			continue
		}
		switch {
		case strings.HasPrefix(trimmed, "//"):
			lines = append(lines, strings.TrimSpace(strings.TrimPrefix(trimmed, "//")))
		case strings.HasPrefix(trimmed, "#"):
			lines = append(lines, strings.TrimSpace(strings.TrimPrefix(trimmed, "#")))
		default:
			if len(lines) > 0 {
				return strings.Join(lines, " ")
			}
			return ""
		}
	}
	return strings.Join(lines, " ")
}
