package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/contact-manager/internal/model"
	"github.com/sakif/contact-manager/internal/service"
)

// AddressHandler serves the address endpoints nested under a contact.
type AddressHandler struct {
	addresses *service.AddressService
	logger    *slog.Logger
}

// NewAddressHandler creates an AddressHandler.
func NewAddressHandler(addresses *service.AddressService, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{addresses: addresses, logger: logger}
}

// HandleCreate adds an address to the user's contact.
//
// HTTP: POST /api/contacts/{contactId}/addresses
// BODY: {"street": "...", "city": "...", "province": "...", "country": "...", "postalCode": "..."}
func (h *AddressHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CreateAddressRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.addresses.Create(r.Context(), user.Username, r.PathValue("contactId"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, resp)
}

// HandleList returns every address of the contact.
//
// HTTP: GET /api/contacts/{contactId}/addresses
func (h *AddressHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	resp, err := h.addresses.List(r.Context(), user.Username, r.PathValue("contactId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, resp)
}

// HandleGet returns one address of the contact.
//
// HTTP: GET /api/contacts/{contactId}/addresses/{addressId}
func (h *AddressHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	resp, err := h.addresses.Get(r.Context(), user.Username, r.PathValue("contactId"), r.PathValue("addressId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, resp)
}

// HandleUpdate replaces an address's fields.
//
// HTTP: PUT /api/contacts/{contactId}/addresses/{addressId}
func (h *AddressHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var req model.UpdateAddressRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.addresses.Update(r.Context(), user.Username, r.PathValue("contactId"), r.PathValue("addressId"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, resp)
}

// HandleDelete removes one address of the contact.
//
// HTTP: DELETE /api/contacts/{contactId}/addresses/{addressId}
func (h *AddressHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.addresses.Delete(r.Context(), user.Username, r.PathValue("contactId"), r.PathValue("addressId")); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "OK")
}
