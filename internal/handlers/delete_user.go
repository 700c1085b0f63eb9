package handlers

//go:generate mockgen -source=delete_user.go -destination=mock_delete_user.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/user-crud/internal/models"
	"github.com/sbilibin2017/user-crud/internal/services"
)

// UserDeleter defines the interface that the service must implement.
type UserDeleter interface {
	Delete(ctx context.Context, id int64) error
}

// NewDeleteUserHandler returns an HTTP handler removing a user.
// @Summary Delete a user
// @Tags users
// @Accept x-www-form-urlencoded
// @Param id path int true "User ID"
// @Param csrf_token formData string true "Anti-forgery token"
// @Success 302 {string} string "Redirect to /users"
// @Failure 400 {string} string "Missing or invalid anti-forgery token"
// @Failure 404 {string} string "Malformed id"
// @Failure 500 {string} string "Internal server error"
// @Router /users/{id}/delete [post]
func NewDeleteUserHandler(svc UserDeleter, sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := userID(r)
		if !ok {
			http.NotFound(w, r)
			return
		}

		s := sessions.Get(r)

		err := svc.Delete(r.Context(), id)
		switch {
		case err == nil:
			s.AddFlash(models.FlashSuccess, msgDeleted)
		case errors.Is(err, services.ErrUserNotFound):
			s.AddFlash(models.FlashDanger, msgNotFound)
		default:
			internalError(w, r, err)
			return
		}

		redirect(w, r, sessions, s, "/users")
	}
}
