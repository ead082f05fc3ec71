package site

import (
	"html"
	"sort"
	"strings"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

const indexSourceName = "__index__.md"

// indexEntry is a single item on the generated listing.
type indexEntry struct {
	Href  string
	Title string
}

// indexFragment renders the HTML body of the domain index page: an optional
// intro converted from __index__.md followed by a listing of every published
// page, sorted by output path.
func indexFragment(conv interfaces.MarkdownConverter, intro string, siteTitle string, entries []indexEntry) string {
	var b strings.Builder

	if strings.TrimSpace(intro) != "" {
		b.WriteString(conv.Convert(intro))
	} else {
		b.WriteString("<h1>")
		b.WriteString(html.EscapeString(siteTitle))
		b.WriteString("</h1>")
	}

	sorted := make([]indexEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Href < sorted[j].Href
	})

	b.WriteString("\n<h2>Posts</h2>\n<ul>\n")
	for _, e := range sorted {
		b.WriteString(`<li><a href="`)
		b.WriteString(html.EscapeString(e.Href))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(e.Title))
		b.WriteString("</a></li>\n")
	}
	b.WriteString("</ul>")

	return b.String()
}
