package users

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/vibratto/vibratto-backend/internal/api"
	"github.com/vibratto/vibratto-backend/internal/auth"
	"github.com/vibratto/vibratto-backend/internal/middleware"
	"github.com/vibratto/vibratto-backend/internal/models"
	"github.com/vibratto/vibratto-backend/internal/storage"
)

// UserHandler serves registration, login and profile endpoints.
type UserHandler struct {
	Store    storage.UserStore
	Verifier *auth.Verifier
}

// Register handles POST /auth/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Type     string `json:"type"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		api.WriteError(w, models.NewValidation("name, email and password are required"))
		return
	}
	if !models.ValidUserType(req.Type) {
		api.WriteError(w, models.NewValidation("type must be musico, productor or venue"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		api.WriteError(w, models.NewInternal(err))
		return
	}
	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Type:         req.Type,
	}
	if err := h.Store.Create(r.Context(), user); err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "user registered",
		"user":    user.Public(),
	})
}

// Login handles POST /auth/login and returns a signed token.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		api.WriteError(w, models.NewValidation("email and password are required"))
		return
	}

	user, err := h.Store.GetByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		// Same response for unknown email and wrong password.
		api.WriteError(w, models.NewUnauthorized("invalid credentials"))
		return
	}

	token, err := h.Verifier.Sign(user.ID, user.Name, user.Type)
	if err != nil {
		api.WriteError(w, models.NewInternal(err))
		return
	}
	log.Printf("[Users] Login: user=%s", user.ID)
	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "login successful",
		"token":   token,
		"user":    user,
	})
}

// Me handles GET /users/me for the authenticated user.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	user, err := h.Store.GetByID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, models.NewNotFound("user"))
			return
		}
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, user)
}

// GetProfile handles GET /users/{id}: the public projection.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	user, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, models.NewNotFound("user"))
			return
		}
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, user.Public())
}

// UpdateProfile handles PUT /users/me. Genres set here drive all
// recommendation scoring.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	var req struct {
		Name     *string   `json:"name"`
		Bio      *string   `json:"bio"`
		Location *string   `json:"location"`
		Genres   *[]string `json:"genres"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}

	user, err := h.Store.GetByID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, models.NewNotFound("user"))
			return
		}
		api.WriteError(w, err)
		return
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Genres != nil {
		user.Genres = *req.Genres
	}
	if err := h.Store.Update(r.Context(), user); err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "profile updated",
		"user":    user,
	})
}
