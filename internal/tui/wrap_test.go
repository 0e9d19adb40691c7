package tui

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const loremBody = "quia et suscipit\nsuscipit recusandae consequuntur expedita et cum\nreprehenderit molestiae ut ut quas totam\nnostrum rerum est autem sunt rem eveniet architecto"

func assertFits(t *testing.T, lines []string, width int) {
	t.Helper()
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n > width {
			t.Errorf("Line %d exceeds width: %q (len=%d, max=%d)", i, line, n, width)
		}
	}
}

func TestWrapText_FitsWithinWidth(t *testing.T) {
	result := WrapText("sunt aut facere", 20)

	if len(result) != 1 || result[0] != "sunt aut facere" {
		t.Errorf("Expected the line unchanged, got %v", result)
	}
}

func TestWrapText_SimpleWrap(t *testing.T) {
	result := WrapText("sunt aut facere repellat provident occaecati", 15)
	assertFits(t, result, 15)

	joined := strings.Join(result, " ")
	if joined != "sunt aut facere repellat provident occaecati" {
		t.Errorf("Content not preserved: %v", result)
	}
}

func TestWrapText_LongWordBreak(t *testing.T) {
	result := WrapText("reprehenderitmolestiaeututquastotam", 10)
	assertFits(t, result, 10)

	if len(result) != 4 {
		t.Errorf("Expected word to be broken into 4 lines, got %v", result)
	}
}

func TestWrapText_LongWordTailJoinsNextWord(t *testing.T) {
	result := WrapText("abcdefghijkl mn", 10)
	if want := []string{"abcdefghij", "kl mn"}; strings.Join(result, "|") != strings.Join(want, "|") {
		t.Errorf("Expected %v, got %v", want, result)
	}
}

func TestWrapText_PreservesNewlines(t *testing.T) {
	result := WrapText("Line 1\n\nLine 3", 20)

	if len(result) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(result))
	}
	if result[0] != "Line 1" || result[1] != "" || result[2] != "Line 3" {
		t.Errorf("Lines not preserved correctly: %v", result)
	}
}

func TestWrapText_NonPositiveWidth(t *testing.T) {
	for _, width := range []int{0, -5} {
		if result := WrapText("Hello", width); len(result) != 0 {
			t.Errorf("Expected empty result for width %d, got %v", width, result)
		}
	}
}

func TestWrapText_ExactWidth(t *testing.T) {
	result := WrapText("1234567890", 10)
	if len(result) != 1 || result[0] != "1234567890" {
		t.Errorf("Expected single unchanged line, got %v", result)
	}
}

func TestWrapText_MultibyteRunes(t *testing.T) {
	result := WrapText("héllo wörld ñandú", 11)
	assertFits(t, result, 11)

	if result[0] != "héllo wörld" {
		t.Errorf("Expected runes to count as one column, got %v", result)
	}
}

func TestWrapText_PostBody(t *testing.T) {
	result := WrapText(loremBody, 30)
	assertFits(t, result, 30)

	if len(result) < 4 {
		t.Errorf("Expected at least the 4 source lines, got %d", len(result))
	}
}

func TestClampLines(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}

	if got := ClampLines(lines, 10); len(got) != 4 {
		t.Errorf("Expected all lines kept, got %v", got)
	}
	got := ClampLines(lines, 3)
	if strings.Join(got, ",") != "a,b,..." {
		t.Errorf("Expected clamped lines, got %v", got)
	}
	if got := ClampLines(lines, 0); got != nil {
		t.Errorf("Expected nil for zero lines, got %v", got)
	}
	if lines[2] != "c" {
		t.Error("Expected input to be left untouched")
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Hello world test", []string{"Hello", "world", "test"}},
		{"Hello    world", []string{"Hello", "world"}},
		{"\tHello\r\n", []string{"Hello"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := splitWords(tt.in)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
			t.Errorf("splitWords(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
