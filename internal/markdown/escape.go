package markdown

import "strings"

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
)

// escapeText escapes literal text for element content. Each source character
// is escaped exactly once; already-escaped entities are not special-cased.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// escapeAttr escapes text for use inside a double-quoted attribute value.
func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
