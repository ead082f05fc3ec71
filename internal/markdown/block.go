package markdown

import "strings"

// BlockKind identifies the structural type of a block. Block classification
// happens before any inline processing and never changes afterwards.
type BlockKind int

const (
	KindHeading BlockKind = iota
	KindParagraph
	KindFencedCode
	KindIndentedCode
	KindList
)

// ListItem is a single entry of a flat list block.
type ListItem struct {
	Text string
}

// Block is a tagged variant: Kind selects which payload fields carry meaning.
//
//	KindHeading      Level (1-3), Text
//	KindParagraph    Lines
//	KindFencedCode   Lines (literal), Lang (may be empty)
//	KindIndentedCode Lines (literal)
//	KindList         Ordered, Items
type Block struct {
	Kind    BlockKind
	Level   int
	Text    string
	Lines   []string
	Lang    string
	Ordered bool
	Items   []ListItem
}

// segment partitions document lines into typed blocks, in document order.
// Blank lines separate blocks and are dropped, except inside code blocks
// where they are preserved verbatim. The scan never backtracks past the
// current block.
func segment(lines []string) []Block {
	var blocks []Block

	i := 0
	for i < len(lines) {
		line := lines[i]
		switch {
		case isBlank(line):
			i++
		case hasFenceMarker(line):
			block, next := scanFenced(lines, i)
			blocks = append(blocks, block)
			i = next
		case hasHeadingMarker(line):
			level, text, _ := headingMarker(line)
			blocks = append(blocks, Block{Kind: KindHeading, Level: level, Text: text})
			i++
		case hasListMarker(line):
			block, next := scanList(lines, i)
			blocks = append(blocks, block)
			i = next
		case hasIndentMarker(line):
			block, next := scanIndented(lines, i)
			blocks = append(blocks, block)
			i = next
		default:
			block, next := scanParagraph(lines, i)
			blocks = append(blocks, block)
			i = next
		}
	}

	return blocks
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// headingMarker matches 1-3 leading '#' runes followed by whitespace. Four or
// more hashes, or a hash glued to text ("#tag"), are not headings and fall
// through to the paragraph rules.
func headingMarker(line string) (level int, text string, ok bool) {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 3 || n == len(line) {
		return 0, "", false
	}
	if line[n] != ' ' && line[n] != '\t' {
		return 0, "", false
	}
	return n, strings.TrimSpace(line[n:]), true
}

func hasHeadingMarker(line string) bool {
	_, _, ok := headingMarker(line)
	return ok
}

// fenceMarker matches a line consisting solely of three or more backticks
// plus an optional trailing language tag.
func fenceMarker(line string) (width int, lang string, ok bool) {
	trimmed := strings.TrimRight(line, " \t")
	n := 0
	for n < len(trimmed) && trimmed[n] == '`' {
		n++
	}
	if n < 3 {
		return 0, "", false
	}
	lang = strings.TrimSpace(trimmed[n:])
	if strings.ContainsRune(lang, '`') {
		return 0, "", false
	}
	return n, lang, true
}

func hasFenceMarker(line string) bool {
	_, _, ok := fenceMarker(line)
	return ok
}

// scanFenced consumes everything after the opening fence literally until a
// matching closing fence: at least as many backticks as the opener and no
// language tag. An unterminated fence closes implicitly at end of document.
func scanFenced(lines []string, start int) (Block, int) {
	width, lang, _ := fenceMarker(lines[start])

	var body []string
	i := start + 1
	for i < len(lines) {
		if w, l, ok := fenceMarker(lines[i]); ok && l == "" && w >= width {
			return Block{Kind: KindFencedCode, Lang: lang, Lines: body}, i + 1
		}
		body = append(body, lines[i])
		i++
	}
	return Block{Kind: KindFencedCode, Lang: lang, Lines: body}, i
}

// listMarker matches "-"/"*" followed by whitespace (unordered) or one or
// more digits followed by "." and whitespace (ordered).
func listMarker(line string) (text string, ordered bool, ok bool) {
	if len(line) >= 2 && (line[0] == '-' || line[0] == '*') && (line[1] == ' ' || line[1] == '\t') {
		return strings.TrimSpace(line[2:]), false, true
	}
	n := 0
	for n < len(line) && line[n] >= '0' && line[n] <= '9' {
		n++
	}
	if n > 0 && n+1 < len(line) && line[n] == '.' && (line[n+1] == ' ' || line[n+1] == '\t') {
		return strings.TrimSpace(line[n+2:]), true, true
	}
	return "", false, false
}

func hasListMarker(line string) bool {
	_, _, ok := listMarker(line)
	return ok
}

// scanList merges consecutive list-marker lines of the same orderedness into
// one flat list block. A change in orderedness or any non-list line ends the
// block.
func scanList(lines []string, start int) (Block, int) {
	text, ordered, _ := listMarker(lines[start])
	items := []ListItem{{Text: text}}

	i := start + 1
	for i < len(lines) {
		itemText, itemOrdered, ok := listMarker(lines[i])
		if !ok || itemOrdered != ordered {
			break
		}
		items = append(items, ListItem{Text: itemText})
		i++
	}
	return Block{Kind: KindList, Ordered: ordered, Items: items}, i
}

// indentMarker matches a 4-space or tab indent and returns the line with that
// prefix stripped.
func indentMarker(line string) (string, bool) {
	if strings.HasPrefix(line, "    ") {
		return line[4:], true
	}
	if strings.HasPrefix(line, "\t") {
		return line[1:], true
	}
	return "", false
}

func hasIndentMarker(line string) bool {
	_, ok := indentMarker(line)
	return ok
}

// scanIndented collects indented lines into one literal code block. Blank
// lines stay inside the block only when more indented code follows; a blank
// run followed by a non-indented line ends the block before the blanks.
func scanIndented(lines []string, start int) (Block, int) {
	var body []string

	i := start
	for i < len(lines) {
		if code, ok := indentMarker(lines[i]); ok {
			body = append(body, code)
			i++
			continue
		}
		if isBlank(lines[i]) {
			j := i
			for j < len(lines) && isBlank(lines[j]) {
				j++
			}
			if j < len(lines) && hasIndentMarker(lines[j]) {
				for ; i < j; i++ {
					body = append(body, "")
				}
				continue
			}
		}
		break
	}
	return Block{Kind: KindIndentedCode, Lines: body}, i
}

// scanParagraph accumulates non-blank lines until a blank line or any block
// marker (heading, fence, indent, list) interrupts the run.
func scanParagraph(lines []string, start int) (Block, int) {
	body := []string{strings.TrimSpace(lines[start])}

	i := start + 1
	for i < len(lines) {
		line := lines[i]
		if isBlank(line) || hasHeadingMarker(line) || hasFenceMarker(line) ||
			hasListMarker(line) || hasIndentMarker(line) {
			break
		}
		body = append(body, strings.TrimSpace(line))
		i++
	}
	return Block{Kind: KindParagraph, Lines: body}, i
}
