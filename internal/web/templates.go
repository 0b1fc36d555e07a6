// Package web holds the HTML views rendered by the controllers.
package web

import (
	"embed"
	"html/template"
)

// View names
const (
	ViewIndex       = "index.html"
	ViewCourses     = "curso.html"
	ViewUnavailable = "indisponivel.html"
	ViewNotFound    = "404.html"
	ViewServerError = "500.html"
)

//go:embed templates/*.html
var templateFS embed.FS

// LoadTemplates parses every embedded view
func LoadTemplates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}
