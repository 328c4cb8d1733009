package status

import (
	"fmt"
	"strings"
	"unicode"
)

type line struct {
	num    int
	text   string
	fields []string
}

// scanLines keeps only lines that have at least one whitespace boundary
// between tokens. Blank lines and single-token lines are dropped.
func scanLines(text string) []line {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	lines := make([]line, 0, len(raw))
	for i, s := range raw {
		trimmed := strings.TrimSpace(s)
		if strings.IndexFunc(trimmed, unicode.IsSpace) < 0 {
			continue
		}

		lines = append(lines, line{
			num:    i + 1,
			text:   trimmed,
			fields: strings.Fields(trimmed),
		})
	}

	return lines
}

// splitPair splits l on the first sep and trims both halves.
func splitPair(l line, sep string) (string, string, bool) {
	key, value, ok := strings.Cut(l.text, sep)
	if !ok {
		return "", "", false
	}

	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

// require checks l has at least n tokens.
func require(source string, l line, n int) *ParseError {
	if len(l.fields) >= n {
		return nil
	}

	return &ParseError{
		Source: source,
		Line:   l.num,
		Reason: fmt.Sprintf("want at least %d fields, got %d", n, len(l.fields)),
	}
}

