package handlers

//go:generate mockgen -source=edit_user.go -destination=mock_edit_user.go -package=handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sbilibin2017/user-crud/internal/models"
	"github.com/sbilibin2017/user-crud/internal/services"
	"github.com/sbilibin2017/user-crud/internal/validation"
	"github.com/sbilibin2017/user-crud/internal/views"
)

// UserGetter defines the interface that the service must implement.
type UserGetter interface {
	Get(ctx context.Context, id int64) (*models.User, error)
}

// UserUpdater defines the interface that the service must implement.
type UserUpdater interface {
	Update(ctx context.Context, id int64, in models.UserInput) error
}

// NewEditUserFormHandler returns an HTTP handler rendering the edit form.
// @Summary Edit form
// @Description Renders the edit form, or redirects to /users when the user does not exist
// @Tags users
// @Produce html
// @Param id path int true "User ID"
// @Success 200 {string} string "HTML page"
// @Success 302 {string} string "User not found, redirect to /users"
// @Failure 404 {string} string "Malformed id"
// @Router /users/{id}/edit [get]
func NewEditUserFormHandler(svc UserGetter, sessions Sessions, renderer Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := userID(r)
		if !ok {
			http.NotFound(w, r)
			return
		}

		s := sessions.Get(r)

		user, err := svc.Get(r.Context(), id)
		if errors.Is(err, services.ErrUserNotFound) {
			s.AddFlash(models.FlashDanger, msgNotFound)
			redirect(w, r, sessions, s, "/users")
			return
		}
		if err != nil {
			internalError(w, r, err)
			return
		}

		render(w, r, sessions, renderer, s, views.EditPage, func(l views.Layout) any {
			return views.EditData{Layout: l, ID: user.ID, Name: user.Name, Email: user.Email}
		})
	}
}

// NewUpdateUserHandler returns an HTTP handler for the edit form submission.
// Rejected input re-renders the form with the submitted values.
// @Summary Update a user
// @Description Validates and stores a new name and email; the email must not belong to another user
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce html
// @Param id path int true "User ID"
// @Param name formData string true "Name, 2-100 characters"
// @Param email formData string true "Email, at most 120 characters"
// @Param csrf_token formData string true "Anti-forgery token"
// @Success 302 {string} string "Redirect to /users"
// @Success 200 {string} string "Edit form with errors"
// @Failure 400 {string} string "Missing or invalid anti-forgery token"
// @Failure 404 {string} string "Malformed id"
// @Router /users/{id}/edit [post]
func NewUpdateUserHandler(svc UserUpdater, sessions Sessions, renderer Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := userID(r)
		if !ok {
			http.NotFound(w, r)
			return
		}

		s := sessions.Get(r)
		name, email := r.PostFormValue("name"), r.PostFormValue("email")

		showForm := func(errs validation.FieldErrors) {
			render(w, r, sessions, renderer, s, views.EditPage, func(l views.Layout) any {
				return views.EditData{Layout: l, ID: id, Name: name, Email: email, Errors: errs}
			})
		}

		in, errs := validation.ValidateUser(name, email)
		if errs != nil {
			showForm(errs)
			return
		}

		err := svc.Update(r.Context(), id, in)
		switch {
		case err == nil:
			s.AddFlash(models.FlashSuccess, msgUpdated)
			redirect(w, r, sessions, s, "/users")
		case errors.Is(err, services.ErrUserNotFound):
			s.AddFlash(models.FlashDanger, msgNotFound)
			redirect(w, r, sessions, s, "/users")
		case errors.Is(err, services.ErrEmailTaken):
			s.AddFlash(models.FlashDanger, msgEmailTaken)
			showForm(validation.FieldErrors{validation.FieldEmail: {msgEmailTaken}})
		case errors.Is(err, services.ErrUnexpected):
			s.AddFlash(models.FlashDanger, msgUnexpected)
			redirect(w, r, sessions, s, fmt.Sprintf("/users/%d/edit", id))
		default:
			internalError(w, r, err)
		}
	}
}
