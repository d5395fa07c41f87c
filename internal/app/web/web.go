// Package web embeds the HTML templates rendered by the handlers.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates
var templateFS embed.FS

// Templates parses every embedded template. Pages are addressed by their define name,
// e.g. "board/detail".
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.tmpl", "templates/*/*.tmpl")
}

// MustTemplates is like Templates but panics on a parse error.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
