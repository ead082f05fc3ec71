package interfaces

import "io"

// TemplateRenderer renders named templates with the supplied data. When an
// optional writer is provided the rendered output is also copied to it.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}
