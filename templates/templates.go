// Package templates holds the dashboard's HTML views.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses every view. The page template is "dashboard.html".
func Load() (*template.Template, error) {
	return template.New("").ParseFS(files, "*.html")
}
