// Package view renders the server-side HTML pages.
//
// Every page under templates/ is parsed together with base.layout.html and the
// shared partials, and is addressed by its path without extension ("index",
// "user/login"). Engine implements fiber.Views.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates
var templateFS embed.FS

const (
	layoutFile    = "templates/base.layout.html"
	partialGlob   = "templates/*.partial.html"
	pageExtension = ".html"
)

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
	"join": strings.Join,
}

// Engine is a fiber.Views implementation over embedded html/template pages.
type Engine struct {
	mu    sync.RWMutex
	pages map[string]*template.Template
}

var _ fiber.Views = (*Engine)(nil)

// New returns an Engine. Templates are parsed on Load.
func New() *Engine {
	return &Engine{}
}

// Load parses every page. Fiber calls it once when the app is created.
func (e *Engine) Load() error {
	pages := make(map[string]*template.Template)

	err := fs.WalkDir(templateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, pageExtension) || p == layoutFile || strings.HasSuffix(p, ".partial.html") {
			return nil
		}

		ts, err := template.New(path.Base(p)).Funcs(functions).ParseFS(templateFS, layoutFile, partialGlob, p)
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}

		name := strings.TrimSuffix(strings.TrimPrefix(p, "templates/"), pageExtension)
		pages[name] = ts
		return nil
	})
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.pages = pages
	e.mu.Unlock()
	return nil
}

// Render executes the layout for page name with binding as data.
func (e *Engine) Render(w io.Writer, name string, binding interface{}, _ ...string) error {
	e.mu.RLock()
	ts, ok := e.pages[strings.TrimPrefix(name, "./")]
	e.mu.RUnlock()
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return ts.ExecuteTemplate(w, "base", binding)
}
