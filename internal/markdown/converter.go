package markdown

import (
	"strings"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// Converter implements interfaces.MarkdownConverter with the minimal block
// and inline engine defined in this package. The zero value is ready to use;
// the converter holds no state between calls, so a single instance is safe to
// share across goroutines converting distinct documents.
type Converter struct{}

var _ interfaces.MarkdownConverter = (*Converter)(nil)

// New returns a reusable converter instance.
func New() *Converter {
	return &Converter{}
}

// Convert renders one Markdown document into one HTML fragment. It accepts
// any input and never fails: unsupported or malformed syntax renders as
// escaped literal text. A document of only blank lines yields the empty
// string.
func (c *Converter) Convert(source string) string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	blocks := segment(strings.Split(source, "\n"))
	if len(blocks) == 0 {
		return ""
	}

	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		parts = append(parts, renderBlock(block))
	}
	return strings.Join(parts, "\n")
}
