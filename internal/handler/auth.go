package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/contact-manager/internal/auth"
	"github.com/sakif/contact-manager/internal/model"
	"github.com/sakif/contact-manager/internal/service"
)

// AuthHandler serves login and logout.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// HandleLogin exchanges credentials for a session token.
//
// HTTP: POST /api/auth/login
// BODY: {"username": "...", "password": "..."}
// RESPONSE: {"data": {"token": "...", "expiredAt": 1756600000000}}
//
// expiredAt is epoch milliseconds. Clients send the token back in the
// X-API-TOKEN header on every protected request.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, resp)
}

// HandleLogout revokes the current session.
//
// HTTP: DELETE /api/auth/logout
//
// This route sits behind the authenticator, so an expired or unknown token
// never reaches here — logout with a dead token is a 401 like any other
// protected request.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.logger.Error("no authenticated user in request context")
		writeError(w, errors.New("missing principal"))
		return
	}

	if err := h.auth.Logout(r.Context(), user.Username); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "OK")
}
