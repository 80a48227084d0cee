// Package textwrap breaks text into lines of bounded length for display in
// a launcher result description.
package textwrap

import (
	"strings"
	"unicode/utf8"
)

// Wrap splits text on whitespace and greedily refills the words into lines
// of at most width runes, counting the single space between words. A word
// longer than width occupies a line of its own. Lines are joined with "\n".
// A width of zero or less disables wrapping and only normalizes whitespace.
func Wrap(text string, width int) string {
	words := strings.Fields(text)
	if width <= 0 {
		return strings.Join(words, " ")
	}

	lines := make([]string, 0, len(words))
	var (
		line    strings.Builder
		lineLen int
	)

	for _, word := range words {
		n := utf8.RuneCountInString(word)

		if lineLen > 0 && lineLen+1+n <= width {
			line.WriteByte(' ')
			line.WriteString(word)
			lineLen += 1 + n
			continue
		}

		if lineLen > 0 {
			lines = append(lines, line.String())
			line.Reset()
		}

		line.WriteString(word)
		lineLen = n
	}

	if lineLen > 0 {
		lines = append(lines, line.String())
	}

	return strings.Join(lines, "\n")
}
