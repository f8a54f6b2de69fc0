// Package web holds the server-rendered pages.
package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/yukikurage/todo-web/internal/constants"
)

//go:embed templates/*.html
var templateFS embed.FS

// FuncMap is available to every page.
var FuncMap = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(constants.DateLayout)
	},
	"label": func(v interface{ Label() string }) string {
		return v.Label()
	},
}

// Templates parses every embedded page. Pages are addressed by file name,
// e.g. "tasks.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap).ParseFS(templateFS, "templates/*.html")
}
