package interfaces

import "time"

// MarkdownConverter turns the full text of one Markdown document into one
// HTML fragment (no surrounding <html>/<head> scaffold). Conversion is total:
// it never fails, and malformed constructs degrade to escaped literal text.
// Implementations must be stateless between calls so documents can be
// converted concurrently without coordination.
type MarkdownConverter interface {
	Convert(source string) string
}

// Document represents one Markdown source file discovered by the site walker,
// with its metadata resolved and its body ready for conversion.
type Document struct {
	// Path is the document location relative to the domain source root,
	// always slash-separated.
	Path string
	// FrontMatter holds the metadata envelope found at the top of the file,
	// zero-valued when the file carries none.
	FrontMatter FrontMatter
	// Body is the Markdown text with any front matter stripped.
	Body string
	// Title is the resolved page title: front matter title, else the first
	// ATX heading, else the filename stem.
	Title string
	// Slug is the front matter slug, else a slugified Title.
	Slug string
	// LastModified mirrors the source file modification time.
	LastModified time.Time
	// Checksum is the SHA-256 digest of the raw file content, hex encoded.
	// Incremental builds use it to skip unchanged sources.
	Checksum string
}

// FrontMatter models the metadata envelope optionally present at the top of a
// Markdown document. The Custom map keeps template-specific values flexible.
type FrontMatter struct {
	Title   string         `yaml:"title" toml:"title"`
	Slug    string         `yaml:"slug" toml:"slug"`
	Summary string         `yaml:"summary" toml:"summary"`
	Date    time.Time      `yaml:"date" toml:"date"`
	Draft   bool           `yaml:"draft" toml:"draft"`
	Custom  map[string]any `yaml:",inline"`
}
