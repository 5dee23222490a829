// Package repository declares the persistence interfaces the service layer
// depends on. The sqlite subpackage provides the real implementation; tests
// substitute in-memory fakes. Services never see a concrete store type.
package repository

import (
	"context"
	"time"

	"github.com/sakif/contact-manager/internal/model"
	"github.com/sakif/contact-manager/internal/search"
)

// PageOptions is an offset/limit window over an ordered result set.
type PageOptions struct {
	Limit  int
	Offset int
}

// UserRepository persists user accounts and their session state.
type UserRepository interface {
	// Create inserts a new user. Fails if the username is taken.
	Create(ctx context.Context, user *model.User) error

	// ExistsByUsername reports whether a user with this username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// GetByUsername returns the user or apperror.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// FindByToken resolves a session token by exact match.
	// Returns (nil, nil) when no user holds the token — that's a normal
	// authentication outcome, not a store failure.
	FindByToken(ctx context.Context, token string) (*model.User, error)

	// UpdateToken sets the user's session token and expiry in one write.
	// Last write wins when two logins race; the loser's token just stops
	// resolving.
	UpdateToken(ctx context.Context, username, token string, expiredAt time.Time) error

	// ClearToken removes the user's session token and expiry together,
	// preserving the both-or-neither invariant.
	ClearToken(ctx context.Context, username string) error
}

// ContactRepository persists contacts. Every read and write is scoped to the
// owning username — there is no unscoped access path, so a contact ID from
// another tenant behaves exactly like a nonexistent one.
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error

	// GetByID returns the owner's contact or apperror.ErrNotFound.
	GetByID(ctx context.Context, username, id string) (*model.Contact, error)

	// Update rewrites the contact's fields. ErrNotFound when the contact
	// doesn't exist under this owner.
	Update(ctx context.Context, contact *model.Contact) error

	// Delete removes the owner's contact (addresses cascade).
	Delete(ctx context.Context, username, id string) error

	// Count returns the number of contacts matching the specification,
	// ignoring any page window.
	Count(ctx context.Context, spec search.Specification) (int, error)

	// Search returns the matching contacts inside the page window, ordered
	// by id. IDs are time-sortable, so id order is insertion order — the
	// stable ordering repeated searches rely on.
	Search(ctx context.Context, spec search.Specification, opts PageOptions) ([]model.Contact, error)
}

// AddressRepository persists addresses under a contact. Tenancy is enforced
// a level up: callers resolve the contact under the authenticated user
// before touching addresses, so these methods scope by contact ID only.
type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) error

	// GetByID returns the contact's address or apperror.ErrNotFound.
	GetByID(ctx context.Context, contactID, addressID string) (*model.Address, error)

	// ListByContact returns all addresses of a contact in id order.
	ListByContact(ctx context.Context, contactID string) ([]model.Address, error)

	Update(ctx context.Context, address *model.Address) error

	Delete(ctx context.Context, contactID, addressID string) error
}
