package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sakif/contact-manager/internal/apperror"
	"github.com/sakif/contact-manager/internal/model"
)

// =========================================================================
// MOCK ADDRESS REPOSITORY
// =========================================================================

type mockAddressRepo struct {
	addresses []*model.Address
	nextID    int
	failWith  error
}

func newMockAddressRepo() *mockAddressRepo {
	return &mockAddressRepo{}
}

func (m *mockAddressRepo) Create(_ context.Context, address *model.Address) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	address.ID = fmt.Sprintf("addr-%04d", m.nextID)
	stored := *address
	m.addresses = append(m.addresses, &stored)
	return nil
}

func (m *mockAddressRepo) GetByID(_ context.Context, contactID, addressID string) (*model.Address, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, a := range m.addresses {
		if a.ContactID == contactID && a.ID == addressID {
			result := *a
			return &result, nil
		}
	}
	return nil, apperror.NotFound("Address")
}

func (m *mockAddressRepo) ListByContact(_ context.Context, contactID string) ([]model.Address, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	result := make([]model.Address, 0)
	for _, a := range m.addresses {
		if a.ContactID == contactID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAddressRepo) Update(_ context.Context, address *model.Address) error {
	if m.failWith != nil {
		return m.failWith
	}
	for i, a := range m.addresses {
		if a.ContactID == address.ContactID && a.ID == address.ID {
			stored := *address
			m.addresses[i] = &stored
			return nil
		}
	}
	return apperror.NotFound("Address")
}

func (m *mockAddressRepo) Delete(_ context.Context, contactID, addressID string) error {
	if m.failWith != nil {
		return m.failWith
	}
	for i, a := range m.addresses {
		if a.ContactID == contactID && a.ID == addressID {
			m.addresses = append(m.addresses[:i], m.addresses[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("Address")
}

// =========================================================================
// TEST HELPERS
// =========================================================================

// newTestAddressService wires the address service with both mocks and seeds
// one contact for alice, returning its ID.
func newTestAddressService(t *testing.T) (*AddressService, string) {
	t.Helper()
	contacts := newMockContactRepo()
	addresses := newMockAddressRepo()

	contact := &model.Contact{Username: "alice", FirstName: "John"}
	if err := contacts.Create(context.Background(), contact); err != nil {
		t.Fatalf("seeding contact: %v", err)
	}

	svc := NewAddressService(contacts, addresses, testLogger())
	return svc, contact.ID
}

func seedAddress(t *testing.T, svc *AddressService, contactID string) *model.AddressResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), "alice", contactID, model.CreateAddressRequest{
		Street:  "Jl. Sudirman 1",
		City:    "Jakarta",
		Country: "Indonesia",
	})
	if err != nil {
		t.Fatalf("seeding address: %v", err)
	}
	return resp
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestAddressCreate_Success(t *testing.T) {
	svc, contactID := newTestAddressService(t)

	resp, err := svc.Create(context.Background(), "alice", contactID, model.CreateAddressRequest{
		Street:     "Jl. Sudirman 1",
		City:       "Jakarta",
		Province:   "DKI Jakarta",
		Country:    "Indonesia",
		PostalCode: "12190",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if resp.ID == "" {
		t.Error("Create() returned an empty ID")
	}
	if resp.Country != "Indonesia" || resp.City != "Jakarta" {
		t.Errorf("Create() = %+v, want Indonesia/Jakarta", resp)
	}
}

func TestAddressCreate_CountryRequired(t *testing.T) {
	svc, contactID := newTestAddressService(t)

	_, err := svc.Create(context.Background(), "alice", contactID, model.CreateAddressRequest{
		Street: "No Country Road",
	})
	if !errors.Is(err, apperror.ErrBadRequest) {
		t.Fatalf("Create() error = %v, want ErrBadRequest", err)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Message != "country: must not be blank" {
		t.Errorf("message = %v, want %q", err, "country: must not be blank")
	}
}

func TestAddressCreate_ContactOfAnotherUser(t *testing.T) {
	svc, contactID := newTestAddressService(t)

	// Bob cannot attach addresses to alice's contact. The failure is the
	// contact lookup — "Contact not found!", not anything about addresses.
	_, err := svc.Create(context.Background(), "bob", contactID, model.CreateAddressRequest{
		Country: "Indonesia",
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Create() cross-owner error = %v, want ErrNotFound", err)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Message != "Contact not found!" {
		t.Errorf("message = %v, want %q", err, "Contact not found!")
	}
}

// =========================================================================
// GET / LIST TESTS
// =========================================================================

func TestAddressGet(t *testing.T) {
	svc, contactID := newTestAddressService(t)
	created := seedAddress(t, svc, contactID)

	resp, err := svc.Get(context.Background(), "alice", contactID, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.Street != "Jl. Sudirman 1" {
		t.Errorf("Street = %q, want Jl. Sudirman 1", resp.Street)
	}
}

func TestAddressGet_NotFoundMessage(t *testing.T) {
	svc, contactID := newTestAddressService(t)

	_, err := svc.Get(context.Background(), "alice", contactID, "nonexistent")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Message != "Address not found!" {
		t.Errorf("message = %v, want %q", err, "Address not found!")
	}
}

func TestAddressList(t *testing.T) {
	svc, contactID := newTestAddressService(t)
	seedAddress(t, svc, contactID)
	seedAddress(t, svc, contactID)

	list, err := svc.List(context.Background(), "alice", contactID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 {
		t.Errorf("List() returned %d addresses, want 2", len(list))
	}
}

func TestAddressList_EmptyIsNotNil(t *testing.T) {
	svc, contactID := newTestAddressService(t)

	list, err := svc.List(context.Background(), "alice", contactID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if list == nil {
		t.Error("List() returned nil — must be an empty slice so it serializes as []")
	}
	if len(list) != 0 {
		t.Errorf("List() returned %d addresses, want 0", len(list))
	}
}

// =========================================================================
// UPDATE / DELETE TESTS
// =========================================================================

func TestAddressUpdate_FullReplacement(t *testing.T) {
	svc, contactID := newTestAddressService(t)
	created := seedAddress(t, svc, contactID)

	resp, err := svc.Update(context.Background(), "alice", contactID, created.ID, model.UpdateAddressRequest{
		Country: "Singapore",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if resp.Country != "Singapore" {
		t.Errorf("Country = %q, want Singapore", resp.Country)
	}
	// Optional fields not in the payload are cleared, not preserved.
	if resp.Street != "" || resp.City != "" {
		t.Errorf("optional fields after replacement = %+v, want cleared", resp)
	}
}

func TestAddressDelete(t *testing.T) {
	svc, contactID := newTestAddressService(t)
	created := seedAddress(t, svc, contactID)

	if err := svc.Delete(context.Background(), "alice", contactID, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	_, err := svc.Get(context.Background(), "alice", contactID, created.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
}

func TestAddressDelete_ContactGateRunsFirst(t *testing.T) {
	svc, contactID := newTestAddressService(t)
	created := seedAddress(t, svc, contactID)

	err := svc.Delete(context.Background(), "bob", contactID, created.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Delete() cross-owner error = %v, want ErrNotFound", err)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Message != "Contact not found!" {
		t.Errorf("message = %v, want %q — the contact gate, not the address lookup", err, "Contact not found!")
	}
}
