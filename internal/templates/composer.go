// Package templates wraps converter output into complete HTML pages.
package templates

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// PageName is the template name the composer executes for every page.
const PageName = "page"

// DefaultPage is the built-in scaffold used when a domain does not ship its
// own __template__.html override.
const DefaultPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Page.Title}}</title>
<link rel="canonical" href="{{.Page.Canonical}}">
<link rel="stylesheet" href="{{.Site.CSSHref}}">
</head>
<body>
<header>
  <h1><a href="{{.Site.BaseURL}}">{{.Site.Title}}</a></h1>
</header>
<main>
{{.Page.Content}}
</main>
<footer>
  <p>Built {{.Build.GeneratedAt}} UTC</p>
</footer>
</body>
</html>
`

// SiteMetadata exposes domain-wide values to page templates.
type SiteMetadata struct {
	Title   string
	BaseURL string
	CSSHref string
}

// PageMetadata describes the page being composed. Content is the converter's
// fragment: everything inside it was already escaped by the core, so it is
// injected as trusted HTML.
type PageMetadata struct {
	Title     string
	Canonical string
	Path      string
	Content   template.HTML
}

// BuildMetadata surfaces build information to templates.
type BuildMetadata struct {
	GeneratedAt string
	ID          string
}

// PageContext is the data contract passed to every page template.
type PageContext struct {
	Site  SiteMetadata
	Page  PageMetadata
	Build BuildMetadata
}

// Composer renders page templates with html/template. It satisfies
// interfaces.TemplateRenderer and is safe for concurrent use once built.
type Composer struct {
	tpl *template.Template
}

var _ interfaces.TemplateRenderer = (*Composer)(nil)

// NewComposer parses the supplied template source, falling back to the
// built-in scaffold when source is empty.
func NewComposer(source string) (*Composer, error) {
	if strings.TrimSpace(source) == "" {
		source = DefaultPage
	}
	tpl, err := template.New(PageName).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("templates: parse page template: %w", err)
	}
	return &Composer{tpl: tpl}, nil
}

// ComposePage renders one complete HTML page for the supplied context.
func (c *Composer) ComposePage(ctx PageContext) (string, error) {
	return c.Render(PageName, ctx)
}

// Render executes the named template, optionally copying the output to the
// supplied writers.
func (c *Composer) Render(name string, data any, out ...io.Writer) (string, error) {
	var sb strings.Builder
	if err := c.tpl.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("templates: execute %q: %w", name, err)
	}
	return c.emit(sb.String(), out...)
}

// RenderString parses and executes a one-off template body.
func (c *Composer) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	tpl, err := template.New("inline").Parse(templateContent)
	if err != nil {
		return "", fmt.Errorf("templates: parse inline template: %w", err)
	}
	var sb strings.Builder
	if err := tpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("templates: execute inline template: %w", err)
	}
	return c.emit(sb.String(), out...)
}

func (c *Composer) emit(rendered string, out ...io.Writer) (string, error) {
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", fmt.Errorf("templates: copy output: %w", err)
		}
	}
	return rendered, nil
}
