package render

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html.tmpl"))

// Page is the data for the dashboard page. With neither Error nor View set
// the page shows the welcome placeholder.
type Page struct {
	Query   string
	Presets []string
	Error   string
	View    *View
}

// Welcome reports whether the page has nothing to show yet.
func (p Page) Welcome() bool { return p.Error == "" && p.View == nil }

// HTML writes the dashboard page.
func HTML(w io.Writer, p Page) error {
	return pageTemplate.Execute(w, p)
}
