// Package markdown implements the minimal Markdown-to-HTML conversion engine
// at the core of sitegen.
//
// The engine is a line-and-block oriented state machine. A document is first
// partitioned into typed blocks (heading, paragraph, fenced code, indented
// code, list); each textual block is then scanned for inline spans (code,
// strong, emphasis, link); everything not recognised as markup is HTML-escaped
// and emitted as literal text. Conversion is total: no input ever fails, and
// malformed constructs degrade to escaped plain text.
//
// This is deliberately not a general-purpose Markdown implementation. Tables,
// footnotes, blockquotes, raw HTML, reference-style links and nested
// structures are out of scope and render as escaped text.
package markdown
