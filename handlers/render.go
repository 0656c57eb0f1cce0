// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/danielhkuo/un-design/middleware"
	"github.com/danielhkuo/un-design/models"
	"github.com/danielhkuo/un-design/voting"
)

// Paths used for redirects
const (
	BasePath     = "/un_design"
	GatePath     = BasePath + "/"
	MenuPath     = BasePath + "/menu"
	IndexPath    = BasePath + "/index"
	ResultPath   = BasePath + "/result"
	FeedbackPath = BasePath + "/admin/feedback"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"gate", "menu", "add", "edit", "index", "result", "admin"}

// Renderer executes the embedded page templates inside the shared layout
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template once
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"budget": func() int { return voting.Budget },
	}

	rd := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range pages {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", page, err)
		}
		rd.pages[page] = tmpl
	}
	return rd, nil
}

// pageData is what every template receives
type pageData struct {
	Identity  models.Identity
	LoggedIn  bool
	CSRFField template.HTML
	Data      any
}

// Render writes page with data. Output is buffered so a template error
// still produces a clean 500.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, page string, data any) {
	tmpl, ok := rd.pages[page]
	if !ok {
		internalError(w, fmt.Errorf("unknown page %q", page))
		return
	}

	_, loggedIn := middleware.SessionFromContext(r.Context())
	pd := pageData{
		Identity:  middleware.IdentityFromContext(r.Context()),
		LoggedIn:  loggedIn,
		CSRFField: csrf.TemplateField(r),
		Data:      data,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", pd); err != nil {
		internalError(w, fmt.Errorf("rendering %s: %w", page, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// internalError logs the real error and returns a generic message to the client
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal error", "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusFound)
}
