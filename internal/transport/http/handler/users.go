package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/planventure-api/internal/domain"
	"github.com/planventure-api/internal/transport/http/middleware"
)

type userGetter interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// UserHandler handles user profile endpoints.
type UserHandler struct {
	users userGetter
}

func NewUserHandler(users userGetter) *UserHandler { return &UserHandler{users: users} }

// Me returns the authenticated user's own profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
