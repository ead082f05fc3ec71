package markdown

import (
	"fmt"
	"strings"
)

// renderBlock turns one typed block into its HTML string. Textual blocks go
// through the inline span engine; code blocks are escaped literally and never
// re-enter inline processing.
func renderBlock(b Block) string {
	switch b.Kind {
	case KindHeading:
		return fmt.Sprintf("<h%d>%s</h%d>", b.Level, renderInline(b.Text), b.Level)
	case KindParagraph:
		// soft-wrap: paragraph lines join with a single space
		return "<p>" + renderInline(strings.Join(b.Lines, " ")) + "</p>"
	case KindFencedCode:
		return renderCode(b.Lines, b.Lang)
	case KindIndentedCode:
		return renderCode(b.Lines, "")
	case KindList:
		return renderList(b)
	}
	return ""
}

func renderCode(lines []string, lang string) string {
	var sb strings.Builder
	if lang == "" {
		sb.WriteString("<pre><code>")
	} else {
		sb.WriteString(`<pre><code class="language-`)
		sb.WriteString(escapeAttr(lang))
		sb.WriteString(`">`)
	}
	if len(lines) > 0 {
		sb.WriteString(escapeText(strings.Join(lines, "\n")))
		sb.WriteString("\n")
	}
	sb.WriteString("</code></pre>")
	return sb.String()
}

func renderList(b Block) string {
	tag := "ul"
	if b.Ordered {
		tag = "ol"
	}
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(tag)
	sb.WriteString(">\n")
	for _, item := range b.Items {
		sb.WriteString("<li>")
		sb.WriteString(renderInline(item.Text))
		sb.WriteString("</li>\n")
	}
	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteString(">")
	return sb.String()
}
