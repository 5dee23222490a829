package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/contact-manager/internal/auth"
	"github.com/sakif/contact-manager/internal/model"
	"github.com/sakif/contact-manager/internal/service"
)

// ContactHandler serves the contact CRUD and search endpoints.
type ContactHandler struct {
	contacts *service.ContactService
	logger   *slog.Logger
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(contacts *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, logger: logger}
}

// principal pulls the authenticated user out of the context, writing the 500
// response itself when the middleware contract is broken.
func principal(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*model.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		logger.Error("no authenticated user in request context")
		writeError(w, errors.New("missing principal"))
		return nil, false
	}
	return user, true
}

// HandleCreate saves a new contact for the authenticated user.
//
// HTTP: POST /api/contacts
// BODY: {"firstName": "...", "lastName": "...", "email": "...", "phone": "..."}
func (h *ContactHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CreateContactRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.contacts.Create(r.Context(), user.Username, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, resp)
}

// HandleSearch runs a filtered, paginated search over the user's contacts.
//
// HTTP: GET /api/contacts?name=&email=&phone=&page=
//
// All query parameters are optional. Criteria values are taken exactly as
// supplied. page is zero-based; anything that doesn't parse as an integer
// counts as page 0, and negative pages are normalized by the service. The
// page size is fixed at 10 and not client-controlled.
func (h *ContactHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))

	criteria := model.SearchCriteria{
		Name:  q.Get("name"),
		Email: q.Get("email"),
		Phone: q.Get("phone"),
		Page:  page,
	}

	result, err := h.contacts.Search(r.Context(), user.Username, criteria)
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, http.StatusOK, result.Items, result.Paging)
}

// HandleGet returns one contact.
//
// HTTP: GET /api/contacts/{contactId}
func (h *ContactHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	resp, err := h.contacts.Get(r.Context(), user.Username, r.PathValue("contactId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, resp)
}

// HandleUpdate replaces a contact's fields.
//
// HTTP: PUT /api/contacts/{contactId}
func (h *ContactHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var req model.UpdateContactRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.contacts.Update(r.Context(), user.Username, r.PathValue("contactId"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, resp)
}

// HandleDelete removes a contact and its addresses.
//
// HTTP: DELETE /api/contacts/{contactId}
func (h *ContactHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.contacts.Delete(r.Context(), user.Username, r.PathValue("contactId")); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "OK")
}
