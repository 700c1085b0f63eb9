package handlers

//go:generate mockgen -source=create_user.go -destination=mock_create_user.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/user-crud/internal/models"
	"github.com/sbilibin2017/user-crud/internal/services"
	"github.com/sbilibin2017/user-crud/internal/validation"
)

// UserCreator defines the interface that the service must implement.
type UserCreator interface {
	Create(ctx context.Context, in models.UserInput) (*models.User, error)
}

// NewCreateUserHandler returns an HTTP handler for the create form.
// Every outcome except an infrastructure failure redirects to the list with a notice.
// @Summary Create a user
// @Description Validates name and email, rejects duplicate emails (case-insensitive) and stores the user
// @Tags users
// @Accept x-www-form-urlencoded
// @Param name formData string true "Name, 2-100 characters"
// @Param email formData string true "Email, at most 120 characters"
// @Param csrf_token formData string true "Anti-forgery token"
// @Success 302 {string} string "Redirect to /users"
// @Failure 400 {string} string "Missing or invalid anti-forgery token"
// @Failure 500 {string} string "Internal server error"
// @Router /users [post]
func NewCreateUserHandler(svc UserCreator, sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessions.Get(r)

		in, errs := validation.ValidateUser(r.PostFormValue("name"), r.PostFormValue("email"))
		if errs != nil {
			for _, msg := range errs.Messages() {
				s.AddFlash(models.FlashDanger, msg)
			}
			redirect(w, r, sessions, s, "/users")
			return
		}

		_, err := svc.Create(r.Context(), in)
		switch {
		case err == nil:
			s.AddFlash(models.FlashSuccess, msgCreated)
		case errors.Is(err, services.ErrEmailTaken):
			s.AddFlash(models.FlashDanger, msgEmailTaken)
		case errors.Is(err, services.ErrUnexpected):
			s.AddFlash(models.FlashDanger, msgUnexpected)
		default:
			internalError(w, r, err)
			return
		}

		redirect(w, r, sessions, s, "/users")
	}
}
