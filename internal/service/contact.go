package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/contact-manager/internal/model"
	"github.com/sakif/contact-manager/internal/repository"
	"github.com/sakif/contact-manager/internal/search"
	"github.com/sakif/contact-manager/internal/validation"
)

// Search page size. Fixed, not client-controlled: the page parameter selects
// a window, the window size is the API's business.
const PageSize = 10

// Contact field limits.
const (
	MaxContactNameLength = 100
	MaxEmailLength       = 100
	MaxPhoneLength       = 20
)

// ContactService handles the contact CRUD and search logic. Every method
// takes the owning username — contacts are reachable only through their
// owner, and that scoping happens in the repository's WHERE clause, not here.
type ContactService struct {
	contacts repository.ContactRepository
	logger   *slog.Logger
}

// NewContactService creates a ContactService.
func NewContactService(contacts repository.ContactRepository, logger *slog.Logger) *ContactService {
	return &ContactService{
		contacts: contacts,
		logger:   logger,
	}
}

// validateContactFields holds the shared rules for create and update — the
// two payloads carry the same fields with the same constraints.
func validateContactFields(firstName, lastName, email, phone string) error {
	return validation.Validate(
		validation.Field("firstName", firstName, validation.Required(), validation.MaxLength(MaxContactNameLength)),
		validation.Field("lastName", lastName, validation.MaxLength(MaxContactNameLength)),
		validation.Field("email", email, validation.ValidEmail(), validation.MaxLength(MaxEmailLength)),
		validation.Field("phone", phone, validation.MaxLength(MaxPhoneLength)),
	)
}

// Create validates and saves a new contact under the given owner.
func (s *ContactService) Create(ctx context.Context, username string, req model.CreateContactRequest) (*model.ContactResponse, error) {
	if err := validateContactFields(req.FirstName, req.LastName, req.Email, req.Phone); err != nil {
		return nil, err
	}

	contact := &model.Contact{
		Username:  username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		s.logger.Error("failed to create contact",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating contact: %w", err)
	}

	s.logger.Info("contact created",
		slog.String("id", contact.ID),
		slog.String("username", username),
	)

	resp := contact.ToResponse()
	return &resp, nil
}

// Get returns the owner's contact or apperror.ErrNotFound. A contact ID
// belonging to someone else is indistinguishable from one that doesn't exist.
func (s *ContactService) Get(ctx context.Context, username, id string) (*model.ContactResponse, error) {
	contact, err := s.contacts.GetByID(ctx, username, id)
	if err != nil {
		return nil, err
	}
	resp := contact.ToResponse()
	return &resp, nil
}

// Update replaces the contact's fields with the request payload. This is a
// full replacement, not a merge: an empty optional field clears the stored
// value.
func (s *ContactService) Update(ctx context.Context, username, id string, req model.UpdateContactRequest) (*model.ContactResponse, error) {
	if err := validateContactFields(req.FirstName, req.LastName, req.Email, req.Phone); err != nil {
		return nil, err
	}

	contact, err := s.contacts.GetByID(ctx, username, id)
	if err != nil {
		return nil, err
	}

	contact.FirstName = req.FirstName
	contact.LastName = req.LastName
	contact.Email = req.Email
	contact.Phone = req.Phone

	if err := s.contacts.Update(ctx, contact); err != nil {
		s.logger.Error("failed to update contact",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("contact updated", slog.String("id", id))

	resp := contact.ToResponse()
	return &resp, nil
}

// Delete removes the owner's contact and, via the schema cascade, all its
// addresses.
func (s *ContactService) Delete(ctx context.Context, username, id string) error {
	if err := s.contacts.Delete(ctx, username, id); err != nil {
		return err
	}
	s.logger.Info("contact deleted", slog.String("id", id))
	return nil
}

// Search runs a filtered, paginated query over the owner's contacts.
//
// The flow is count-then-window: Count sees the full matching set, so
// totalPage is correct no matter which page was asked for. A page past the
// end comes back with empty items but truthful paging metadata — currentPage
// echoes the request unclamped, and clients use the combination to detect
// they've paged too far.
//
// Criteria strings are used exactly as supplied: no trimming, no case
// folding. A criterion of " John" matches only contacts containing " John".
func (s *ContactService) Search(ctx context.Context, username string, criteria model.SearchCriteria) (model.Page[model.ContactResponse], error) {
	if criteria.Page < 0 {
		criteria.Page = 0
	}

	spec := search.ForContacts(username, criteria)

	total, err := s.contacts.Count(ctx, spec)
	if err != nil {
		s.logger.Error("failed to count contacts",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return model.Page[model.ContactResponse]{}, fmt.Errorf("counting contacts: %w", err)
	}

	contacts, err := s.contacts.Search(ctx, spec, repository.PageOptions{
		Limit:  PageSize,
		Offset: criteria.Page * PageSize,
	})
	if err != nil {
		s.logger.Error("failed to search contacts",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return model.Page[model.ContactResponse]{}, fmt.Errorf("searching contacts: %w", err)
	}

	// Always a non-nil slice: the data array serializes as [], never null.
	responses := make([]model.ContactResponse, 0, len(contacts))
	for i := range contacts {
		responses = append(responses, contacts[i].ToResponse())
	}

	return model.NewPage(responses, total, criteria.Page, PageSize), nil
}
