// Package handler is the HTTP layer: it parses requests, calls services, and
// writes the response envelope. No business rules live here — a handler that
// does more than decode/delegate/encode is doing the service's job.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/contact-manager/internal/auth"
	"github.com/sakif/contact-manager/internal/model"
	"github.com/sakif/contact-manager/internal/service"
)

// UserHandler serves registration and the current-user endpoint.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleRegister creates a new account.
//
// HTTP: POST /api/users
// BODY: {"username": "...", "password": "...", "name": "..."}
//
// A successful registration answers {"data": "OK"} — no token. Registering
// does not log the user in; that's a separate POST to /api/auth/login.
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if _, err := h.users.Register(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "OK")
}

// HandleCurrent returns the authenticated user's profile.
//
// HTTP: GET /api/users/current
//
// The middleware already resolved the principal; by the time this runs a
// missing user in the context is a wiring bug, not a client error.
func (h *UserHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.logger.Error("no authenticated user in request context")
		writeError(w, errors.New("missing principal"))
		return
	}

	writeData(w, http.StatusOK, h.users.Current(user))
}
