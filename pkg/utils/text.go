package utils

// HeadRunes returns at most limit runes from the start of text, backing up
// to the previous newline when one falls in the last tenth of the window so
// a code snippet is not cut mid line.
func HeadRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	cut := limit
	for i := limit - 1; i > limit-limit/10; i-- {
		if runes[i] == '\n' {
			cut = i
			break
		}
	}
	return string(runes[:cut])
}
