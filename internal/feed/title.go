package feed

import (
	"strings"
	"unicode"
)

// CellText prepares text for a one-line table cell: sanitized, then clamped
// to maxLen runes. Blank input renders as "[empty]".
func CellText(text string, maxLen int) string {
	cleaned := SanitizeTitle(text)
	if cleaned == "" {
		return "[empty]"
	}
	return TruncateTitle(cleaned, maxLen)
}

// TruncateTitle ensures title is at most maxLen runes.
// If truncation is needed, appends "..." to indicate truncation.
func TruncateTitle(title string, maxLen int) string {
	title = strings.TrimSpace(title)
	if maxLen <= 0 {
		return ""
	}

	runes := []rune(title)
	if len(runes) <= maxLen {
		return title
	}

	// Reserve 3 characters for "..."
	if maxLen < 3 {
		return strings.Repeat(".", maxLen)
	}

	return strings.TrimRight(string(runes[:maxLen-3]), " ") + "..."
}

// SanitizeTitle removes control characters and collapses whitespace.
// This keeps multi-line post bodies safe for a single terminal row.
func SanitizeTitle(title string) string {
	title = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, title)

	return strings.Join(strings.Fields(title), " ")
}
