package handler

// RESPONSE ENVELOPE:
// Every response this API sends has one of two shapes:
//
//	success: {"data": ...}            (plus "paging" on search)
//	failure: {"errors": "<message>"}
//
// Clients branch on which key is present, so the shape is part of the API
// contract — handlers never write ad-hoc JSON.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/contact-manager/internal/apperror"
	"github.com/sakif/contact-manager/internal/model"
)

type dataResponse struct {
	Data any `json:"data"`
}

type pageResponse struct {
	Data   any          `json:"data"`
	Paging model.Paging `json:"paging"`
}

type errorResponse struct {
	Errors string `json:"errors"`
}

// writeJSON sends a JSON response with the given status code. Headers and
// status must go out before the body — anything set after Encode starts
// writing is silently dropped.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already gone; logging is all that's left.
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeData wraps a successful result in the data envelope.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataResponse{Data: data})
}

// writePage wraps a search result page in the data envelope with paging
// metadata alongside.
func writePage(w http.ResponseWriter, status int, data any, paging model.Paging) {
	writeJSON(w, status, pageResponse{Data: data, Paging: paging})
}

// writeError maps a domain error onto HTTP and the error envelope.
//
// The service layer returns apperror sentinels; this is the single place
// they become status codes. Anything that isn't a typed application error is
// a 500 with a generic message — raw error strings can carry SQL fragments
// or file paths and never reach clients.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrBadRequest):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		}
		writeJSON(w, status, errorResponse{Errors: appErr.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{Errors: "Internal Server Error"})
}

// decodeBody decodes the request body into dst. On malformed JSON it writes
// the 400 response itself and reports false — callers just return.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, apperror.BadRequest("invalid request body"))
		return false
	}
	return true
}
