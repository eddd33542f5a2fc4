// Package web holds the embedded HTML templates and static assets so the
// server binary is self-contained.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates static
var assets embed.FS

// Engine builds the template engine over the embedded templates.
func Engine() *html.Engine {
	sub, err := fs.Sub(assets, "templates")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}

// StaticFS exposes the embedded static assets for the filesystem middleware.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
