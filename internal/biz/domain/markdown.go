package domain

import "strings"

// markdownReserved is the MarkdownV2 reserved character set
const markdownReserved = "_*[]()~`>#+-=|{}.!"

// EscapeMarkdown prefixes every MarkdownV2 reserved character with a
// backslash. Everything else, newlines included, passes through unchanged.
func EscapeMarkdown(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(markdownReserved, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// EscapeCode escapes text placed inside a MarkdownV2 code span or pre block,
// where only backslash and backtick are significant.
func EscapeCode(text string) string {
	return codeEscaper.Replace(text)
}

var codeEscaper = strings.NewReplacer(`\`, `\\`, "`", "\\`")
