package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/user-crud/internal/models"
	"github.com/sbilibin2017/user-crud/internal/session"
	"github.com/sbilibin2017/user-crud/internal/views"
	"github.com/stretchr/testify/require"
)

func newTestSessions() *session.Manager {
	return session.New(session.WithSecretKey("test-secret"))
}

func newTestRenderer(t *testing.T) *views.Renderer {
	t.Helper()
	r, err := views.New()
	require.NoError(t, err)
	return r
}

// withURLParam attaches a chi route context carrying the {id} parameter.
func withURLParam(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func newFormRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// savedFlashes returns the notices stored in the response's session cookie.
func savedFlashes(t *testing.T, m *session.Manager, rr *httptest.ResponseRecorder) []models.Flash {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
	return m.Load(req).Flashes
}
