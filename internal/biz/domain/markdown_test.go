package domain

import (
	"strings"
	"testing"
)

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"a_b", `a\_b`},
		{"1.2.3", `1\.2\.3`},
		{"(x)!", `\(x\)\!`},
		{"line1\nline2-x", "line1\nline2\\-x"},
		{"ошибка: [bad]", `ошибка: \[bad\]`},
	}

	for _, tt := range tests {
		result := EscapeMarkdown(tt.input)
		if result != tt.expected {
			t.Errorf("EscapeMarkdown(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestEscapeMarkdown_EveryReservedCharEscaped(t *testing.T) {
	input := "x" + markdownReserved + "y"
	result := EscapeMarkdown(input)

	runes := []rune(result)
	reserved := 0
	for i, r := range runes {
		if !strings.ContainsRune(markdownReserved, r) {
			continue
		}
		reserved++
		if i == 0 || runes[i-1] != '\\' {
			t.Errorf("Reserved char %q at %d not preceded by backslash in %q", r, i, result)
		}
	}
	if reserved != len(markdownReserved) {
		t.Errorf("Expected %d reserved chars, got %d", len(markdownReserved), reserved)
	}

	// Non-reserved characters pass through untouched
	stripped := strings.ReplaceAll(result, `\`, "")
	if stripped != input {
		t.Errorf("Expected %q after removing escapes, got %q", input, stripped)
	}
}

func TestEscapeCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"a.b-c", "a.b-c"},
		{"use `x`", "use \\`x\\`"},
		{`C:\tmp`, `C:\\tmp`},
	}

	for _, tt := range tests {
		result := EscapeCode(tt.input)
		if result != tt.expected {
			t.Errorf("EscapeCode(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}
