package model

import "time"

// Contact is a single address-book entry. Every contact belongs to exactly
// one user (Username is a non-nullable foreign key) — that ownership is the
// tenancy boundary enforced by every repository query.
//
// Only FirstName is required. LastName, Email and Phone are optional and
// stored as empty strings when absent; the repository maps them to NULL.
type Contact struct {
	ID        string    `json:"id"`
	Username  string    `json:"-"` // owning user, never serialized
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContactResponse is the public view of a Contact.
type ContactResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// ToResponse maps a Contact to its public view.
func (c *Contact) ToResponse() ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

// CreateContactRequest is the payload for POST /api/contacts.
type CreateContactRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// UpdateContactRequest is the payload for PUT /api/contacts/{contactId}.
// All fields are replaced, not merged — the client sends the full record.
type UpdateContactRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// SearchCriteria describes an ad-hoc contact search. It is a transient value
// built from query parameters — never persisted.
//
// Name matches against first OR last name; Email and Phone match their own
// columns. All matching is plain substring containment with the string
// exactly as supplied — no trimming, no case folding. Empty fields impose no
// constraint. Page is zero-based; the page size is fixed by the service.
type SearchCriteria struct {
	Name  string
	Email string
	Phone string
	Page  int
}
