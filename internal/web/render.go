package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/eleven-am/taskboard/internal/logger"
)

//go:embed templates/*.html
var templateFiles embed.FS

// M is the data map passed to templates
type M map[string]interface{}

type renderer struct {
	templates *template.Template
}

func newRenderer() (*renderer, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &renderer{templates: tmpl}, nil
}

// render writes a page. The current user and any pending flash message
// are injected into the template data.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data M) {
	if data == nil {
		data = M{}
	}
	if _, ok := data["User"]; !ok {
		data["User"] = currentUser(r)
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = s.sessions.PopString(r.Context(), "flash")
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string]string{}
	}

	// Render to a buffer first so a template fault cannot produce a
	// half-written page.
	var buf bytes.Buffer
	if err := s.renderer.templates.ExecuteTemplate(&buf, name, data); err != nil {
		logger.Web().Error("template render failed", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// flash queues a one-shot message for the next rendered page
func (s *Server) flash(r *http.Request, message string) {
	s.sessions.Put(r.Context(), "flash", message)
}

// serverError renders the 500 page and logs the underlying fault
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Web().Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	s.render(w, r, http.StatusInternalServerError, "error.html", M{
		"Status":  http.StatusInternalServerError,
		"Message": "Something went wrong.",
	})
}

// notFound renders the 404 page
func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "error.html", M{
		"Status":  http.StatusNotFound,
		"Message": "Not found.",
	})
}

// forbidden renders the 403 page
func (s *Server) forbidden(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusForbidden, "error.html", M{
		"Status":  http.StatusForbidden,
		"Message": "You do not have access to this task.",
	})
}
