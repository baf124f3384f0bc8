package web

import (
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates
var content embed.FS

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"datetime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 15:04")
		},
		"typeLabel": func(v any) string {
			switch fmt.Sprint(v) {
			case "lost":
				return "Lost Item"
			case "found":
				return "Found Item"
			default:
				return fmt.Sprint(v)
			}
		},
	}
}

// Templates parses the embedded template set.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(content, "templates/*.html")
}
