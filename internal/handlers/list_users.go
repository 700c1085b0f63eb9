package handlers

//go:generate mockgen -source=list_users.go -destination=mock_list_users.go -package=handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/sbilibin2017/user-crud/internal/models"
	"github.com/sbilibin2017/user-crud/internal/views"
)

// UserLister defines the interface that the service must implement.
type UserLister interface {
	List(ctx context.Context, q string, page int) (*models.UserPage, error)
}

// NewListUsersHandler returns an HTTP handler rendering the searchable,
// paginated user list.
// @Summary List users
// @Description Renders users whose name or email contains q, newest first, 10 per page
// @Tags users
// @Produce html
// @Param q query string false "Search term"
// @Param page query int false "Page number" default(1)
// @Success 200 {string} string "HTML page"
// @Failure 500 {string} string "Internal server error"
// @Router /users [get]
func NewListUsersHandler(svc UserLister, sessions Sessions, renderer Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}

		result, err := svc.List(r.Context(), q, page)
		if err != nil {
			internalError(w, r, err)
			return
		}

		s := sessions.Get(r)
		if q != "" && result.Total == 0 {
			s.AddFlash(models.FlashWarning, msgNoResults)
		}

		render(w, r, sessions, renderer, s, views.UsersPage, func(l views.Layout) any {
			return views.UsersData{Layout: l, Page: result}
		})
	}
}
