// Package views holds the server-rendered templates and static assets.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates static
var files embed.FS

// Static is the /static file tree.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Engine parses every template under templates/. Names are the path
// without extension, e.g. "pages/home".
func Engine() *html.Engine {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFuncMap(Funcs())
	return engine
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		// pct renders an optional percentage for inline styles.
		"pct": func(p *float64) string {
			if p == nil {
				return "0"
			}
			return fmt.Sprintf("%.2f", *p)
		},
		"join": strings.Join,
		"first": func(list []string) string {
			if len(list) == 0 {
				return ""
			}
			return list[0]
		},
		"initial": func(s string) string {
			s = strings.TrimSpace(s)
			if s == "" {
				return "?"
			}
			return strings.ToUpper(string([]rune(s)[:1]))
		},
	}
}
