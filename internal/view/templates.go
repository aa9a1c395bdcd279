package view

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// FuncMap holds the helpers shared by every portal template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"icon": func(key string) template.HTML {
			return template.HTML(IconSVG(key))
		},
		"isLast": func(i, n int) bool {
			return i == n-1
		},
	}
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("portal").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
}
