package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sbilibin2017/user-crud/internal/middlewares"
	"github.com/sbilibin2017/user-crud/internal/session"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// UserService bundles every user operation the routes need.
type UserService interface {
	UserLister
	UserCreator
	UserGetter
	UserUpdater
	UserDeleter
}

// NewRouter wires the middleware chain and all routes.
func NewRouter(svc UserService, sessions *session.Manager, renderer Renderer, log *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(log))
	r.Use(middlewares.SessionMiddleware(sessions))
	r.Use(middlewares.CSRFMiddleware(sessions))

	r.Get("/", NewHomeHandler())
	r.Get("/health", NewHealthHandler())

	r.Get("/users", NewListUsersHandler(svc, sessions, renderer))
	r.Post("/users", NewCreateUserHandler(svc, sessions))
	r.Get("/users/{id}/edit", NewEditUserFormHandler(svc, sessions, renderer))
	r.Post("/users/{id}/edit", NewUpdateUserHandler(svc, sessions, renderer))
	r.Post("/users/{id}/delete", NewDeleteUserHandler(svc, sessions))

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}
