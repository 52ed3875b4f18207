package users

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/vibratto/vibratto-backend/internal/api"
)

// RegisterRoutes attaches the auth and profile endpoints. Register and
// login are public; everything else requires a valid token.
func RegisterRoutes(public, protected *mux.Router, h *UserHandler) {
	public.HandleFunc("/auth/register", api.Logged("Users", h.Register)).Methods(http.MethodPost)
	public.HandleFunc("/auth/login", api.Logged("Users", h.Login)).Methods(http.MethodPost)

	protected.HandleFunc("/users/me", api.Logged("Users", h.Me)).Methods(http.MethodGet)
	protected.HandleFunc("/users/me", api.Logged("Users", h.UpdateProfile)).Methods(http.MethodPut)
	protected.HandleFunc("/users/{id}", api.Logged("Users", h.GetProfile)).Methods(http.MethodGet)
}
