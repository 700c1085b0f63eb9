// Package views renders the HTML pages of the user interface.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/sbilibin2017/user-crud/internal/models"
	"github.com/sbilibin2017/user-crud/internal/validation"
)

// Page names
const (
	UsersPage = "users.html"
	EditPage  = "edit.html"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Layout is the data every page shares.
type Layout struct {
	Flashes   []models.Flash
	CSRFToken string
}

// UsersData feeds users.html.
type UsersData struct {
	Layout
	Page *models.UserPage
}

// EditData feeds edit.html. Name and Email are the values shown in the
// form: the stored ones, or the rejected submission.
type EditData struct {
	Layout
	ID     int64
	Name   string
	Email  string
	Errors validation.FieldErrors
}

// Renderer executes the parsed page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the base layout.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{UsersPage, EditPage} {
		tmpl, err := template.New(name).ParseFS(templatesFS, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render writes page name with the given status. The page is rendered into
// a buffer first so a template error never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
