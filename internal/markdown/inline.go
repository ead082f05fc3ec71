package markdown

import "strings"

// SpanKind identifies the inline role of a span within a textual block.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanEmphasis
	SpanStrong
	SpanCode
	SpanLink
)

// Span is one typed fragment of a text run. Spans are positional,
// non-overlapping, and together cover every character of their source text.
type Span struct {
	Kind SpanKind
	Text string
	URL  string
}

// scanSpans tokenises one text run into inline spans. Recognition is
// left-to-right, greedy, and non-nesting: code spans win over strong, strong
// over emphasis, then links. An unterminated delimiter degrades to a literal
// character and scanning resumes right after it.
func scanSpans(text string) []Span {
	var spans []Span
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Kind: SpanText, Text: plain.String()})
			plain.Reset()
		}
	}

	i := 0
	for i < len(text) {
		switch text[i] {
		case '`':
			if j := strings.IndexByte(text[i+1:], '`'); j >= 0 {
				flush()
				spans = append(spans, Span{Kind: SpanCode, Text: text[i+1 : i+1+j]})
				i += j + 2
				continue
			}
			plain.WriteByte('`')
			i++
		case '*':
			if i+1 < len(text) && text[i+1] == '*' {
				if j := strings.Index(text[i+2:], "**"); j >= 0 {
					flush()
					spans = append(spans, Span{Kind: SpanStrong, Text: text[i+2 : i+2+j]})
					i += j + 4
					continue
				}
				plain.WriteString("**")
				i += 2
				continue
			}
			if j := strings.IndexByte(text[i+1:], '*'); j >= 0 {
				flush()
				spans = append(spans, Span{Kind: SpanEmphasis, Text: text[i+1 : i+1+j]})
				i += j + 2
				continue
			}
			plain.WriteByte('*')
			i++
		case '[':
			if linkText, url, width, ok := linkAt(text[i:]); ok {
				flush()
				spans = append(spans, Span{Kind: SpanLink, Text: linkText, URL: url})
				i += width
				continue
			}
			plain.WriteByte('[')
			i++
		default:
			plain.WriteByte(text[i])
			i++
		}
	}
	flush()
	return spans
}

// linkAt matches a "[text](url)" sequence at the start of s. Text and url are
// captured verbatim; malformed bracket or paren sequences do not match and
// the caller falls back to literal text.
func linkAt(s string) (text, url string, width int, ok bool) {
	close := strings.IndexByte(s[1:], ']')
	if close < 0 {
		return "", "", 0, false
	}
	j := 1 + close
	if j+1 >= len(s) || s[j+1] != '(' {
		return "", "", 0, false
	}
	end := strings.IndexByte(s[j+2:], ')')
	if end < 0 {
		return "", "", 0, false
	}
	return s[1:j], s[j+2 : j+2+end], j + 3 + end, true
}

// renderSpans turns spans back into HTML. Concatenated output accounts for
// every input character either as markup or as escaped literal text.
func renderSpans(spans []Span) string {
	var sb strings.Builder
	for _, span := range spans {
		switch span.Kind {
		case SpanEmphasis:
			sb.WriteString("<em>")
			sb.WriteString(escapeText(span.Text))
			sb.WriteString("</em>")
		case SpanStrong:
			sb.WriteString("<strong>")
			sb.WriteString(escapeText(span.Text))
			sb.WriteString("</strong>")
		case SpanCode:
			sb.WriteString("<code>")
			sb.WriteString(escapeText(span.Text))
			sb.WriteString("</code>")
		case SpanLink:
			sb.WriteString(`<a href="`)
			sb.WriteString(escapeAttr(span.URL))
			sb.WriteString(`">`)
			sb.WriteString(escapeText(span.Text))
			sb.WriteString("</a>")
		default:
			sb.WriteString(escapeText(span.Text))
		}
	}
	return sb.String()
}

// renderInline is the one-call form used by the block renderer.
func renderInline(text string) string {
	return renderSpans(scanSpans(text))
}
