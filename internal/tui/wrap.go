package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// WrapText wraps text to maxWidth runes per line, breaking on word boundaries
// when possible. Newlines in the input are kept as line breaks.
func WrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{}
	}

	var result []string
	for _, line := range strings.Split(text, "\n") {
		if utf8.RuneCountInString(line) <= maxWidth {
			result = append(result, line)
			continue
		}
		result = append(result, wrapLine(line, maxWidth)...)
	}
	return result
}

// ClampLines keeps at most n lines, marking the cut with an ellipsis line.
func ClampLines(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(lines) <= n {
		return lines
	}
	clamped := make([]string, n)
	copy(clamped, lines[:n-1])
	clamped[n-1] = "..."
	return clamped
}

// wrapLine wraps a single line that is too long
func wrapLine(line string, maxWidth int) []string {
	var result []string
	var current []rune

	for _, word := range splitWords(line) {
		runes := []rune(word)

		// Words longer than the line are broken forcefully
		if len(runes) > maxWidth {
			if len(current) > 0 {
				result = append(result, string(current))
				current = current[:0]
			}
			for len(runes) > maxWidth {
				result = append(result, string(runes[:maxWidth]))
				runes = runes[maxWidth:]
			}
			current = append(current, runes...)
			continue
		}

		switch {
		case len(current) == 0:
			current = append(current, runes...)
		case len(current)+1+len(runes) > maxWidth:
			result = append(result, string(current))
			current = append(current[:0], runes...)
		default:
			current = append(current, ' ')
			current = append(current, runes...)
		}
	}

	if len(current) > 0 {
		result = append(result, string(current))
	}
	return result
}

// splitWords splits text on runs of whitespace
func splitWords(text string) []string {
	return strings.FieldsFunc(text, unicode.IsSpace)
}
