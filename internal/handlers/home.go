package handlers

import "net/http"

// NewHomeHandler returns an HTTP handler that sends visitors to the user list.
func NewHomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/users", http.StatusFound)
	}
}
