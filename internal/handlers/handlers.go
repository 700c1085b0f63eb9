package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/user-crud/internal/logger"
	"github.com/sbilibin2017/user-crud/internal/session"
	"github.com/sbilibin2017/user-crud/internal/views"
)

// User-facing notices
const (
	msgNoResults  = "No results found"
	msgCreated    = "User created"
	msgUpdated    = "User updated"
	msgDeleted    = "User deleted"
	msgNotFound   = "User not found"
	msgEmailTaken = "This email is already registered"
	msgUnexpected = "An unexpected error occurred, please try again"
)

// Sessions is the part of the session manager handlers rely on.
type Sessions interface {
	Get(r *http.Request) *session.Session
	Save(w http.ResponseWriter, s *session.Session) error
	CSRFToken(s *session.Session) (string, error)
}

// Renderer writes HTML pages.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data any) error
}

// redirect persists the session, including any queued notices, and
// answers with 302 Found.
func redirect(w http.ResponseWriter, r *http.Request, sessions Sessions, s *session.Session, url string) {
	if err := sessions.Save(w, s); err != nil {
		internalError(w, r, err)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// render moves the queued notices into the page, issues a fresh
// anti-forgery token and writes the page.
func render(w http.ResponseWriter, r *http.Request, sessions Sessions, renderer Renderer, s *session.Session, name string, data func(views.Layout) any) {
	layout := views.Layout{Flashes: s.PopFlashes()}

	token, err := sessions.CSRFToken(s)
	if err != nil {
		internalError(w, r, err)
		return
	}
	layout.CSRFToken = token

	if err := sessions.Save(w, s); err != nil {
		internalError(w, r, err)
		return
	}

	if err := renderer.Render(w, http.StatusOK, name, data(layout)); err != nil {
		internalError(w, r, err)
	}
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Log.Errorw("internal server error", "method", r.Method, "uri", r.RequestURI, "err", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// userID parses the {id} path parameter. Only positive integers are ids.
func userID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
