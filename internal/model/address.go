package model

import "time"

// Address is a postal address attached to a contact. Addresses are reached
// only through their contact, so ownership checks happen one level up:
// resolve the contact under the authenticated user first, then the address
// under that contact.
type Address struct {
	ID         string    `json:"id"`
	ContactID  string    `json:"-"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	Province   string    `json:"province"`
	Country    string    `json:"country"`
	PostalCode string    `json:"postalCode"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AddressResponse is the public view of an Address.
type AddressResponse struct {
	ID         string `json:"id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

// ToResponse maps an Address to its public view.
func (a *Address) ToResponse() AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}

// CreateAddressRequest is the payload for POST /api/contacts/{contactId}/addresses.
type CreateAddressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

// UpdateAddressRequest is the payload for PUT .../addresses/{addressId}.
type UpdateAddressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}
