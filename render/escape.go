package render

import "strings"

var (
	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"\r\n", " ",
		"\n", " ",
		"\r", " ",
	)
	// Keeps style element content from being closed by user supplied values.
	styleEscaper = strings.NewReplacer("</", `<\/`)
)

// EscapeHTML escapes text content.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// EscapeAttr escapes attribute value, line breaks become spaces.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
