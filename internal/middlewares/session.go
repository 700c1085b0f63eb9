package middlewares

//go:generate mockgen -source=session.go -destination=mock_session.go -package=middlewares

import (
	"net/http"

	"github.com/sbilibin2017/user-crud/internal/logger"
	"github.com/sbilibin2017/user-crud/internal/session"
)

// SessionLoader loads a session from the request cookie
type SessionLoader interface {
	Load(r *http.Request) *session.Session
}

// CSRFValidator defines the minimal interface needed by CSRFMiddleware
type CSRFValidator interface {
	Get(r *http.Request) *session.Session
	GetTokenFromRequest(r *http.Request) string
	ValidateCSRF(s *session.Session, token string) error
}

// SessionMiddleware puts the cookie session into the request context.
func SessionMiddleware(loader SessionLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := loader.Load(r)
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
		})
	}
}

// CSRFMiddleware rejects state-changing requests without a valid
// anti-forgery token before they reach a handler.
func CSRFMiddleware(validator CSRFValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
				next.ServeHTTP(w, r)
				return
			}

			token := validator.GetTokenFromRequest(r)
			if err := validator.ValidateCSRF(validator.Get(r), token); err != nil {
				logger.Log.Warnw("csrf check failed",
					"request_id", RequestIDFromContext(r.Context()),
					"method", r.Method,
					"uri", r.RequestURI,
					"err", err,
				)
				http.Error(w, "The CSRF token is missing or invalid.", http.StatusBadRequest)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
