package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/contact-manager/internal/model"
	"github.com/sakif/contact-manager/internal/repository"
	"github.com/sakif/contact-manager/internal/validation"
)

// Address field limits.
const (
	MaxAddressLineLength = 200
	MaxCountryLength     = 100
	MaxPostalCodeLength  = 10
)

// AddressService handles the address CRUD logic.
//
// Tenancy works in two hops: every method first resolves the contact under
// the authenticated user, then touches addresses scoped to that contact. If
// the contact isn't the caller's, the first hop already fails with "Contact
// not found!" and the address layer is never reached.
type AddressService struct {
	contacts  repository.ContactRepository
	addresses repository.AddressRepository
	logger    *slog.Logger
}

// NewAddressService creates an AddressService.
func NewAddressService(contacts repository.ContactRepository, addresses repository.AddressRepository, logger *slog.Logger) *AddressService {
	return &AddressService{
		contacts:  contacts,
		addresses: addresses,
		logger:    logger,
	}
}

func validateAddressFields(street, city, province, country, postalCode string) error {
	return validation.Validate(
		validation.Field("street", street, validation.MaxLength(MaxAddressLineLength)),
		validation.Field("city", city, validation.MaxLength(MaxAddressLineLength)),
		validation.Field("province", province, validation.MaxLength(MaxAddressLineLength)),
		validation.Field("country", country, validation.Required(), validation.MaxLength(MaxCountryLength)),
		validation.Field("postalCode", postalCode, validation.MaxLength(MaxPostalCodeLength)),
	)
}

// resolveContact confirms the contact exists under this owner before any
// address operation proceeds.
func (s *AddressService) resolveContact(ctx context.Context, username, contactID string) error {
	_, err := s.contacts.GetByID(ctx, username, contactID)
	return err
}

// Create validates and saves a new address under the owner's contact.
func (s *AddressService) Create(ctx context.Context, username, contactID string, req model.CreateAddressRequest) (*model.AddressResponse, error) {
	if err := validateAddressFields(req.Street, req.City, req.Province, req.Country, req.PostalCode); err != nil {
		return nil, err
	}
	if err := s.resolveContact(ctx, username, contactID); err != nil {
		return nil, err
	}

	address := &model.Address{
		ContactID:  contactID,
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	}
	if err := s.addresses.Create(ctx, address); err != nil {
		s.logger.Error("failed to create address",
			slog.String("contactId", contactID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating address: %w", err)
	}

	s.logger.Info("address created",
		slog.String("id", address.ID),
		slog.String("contactId", contactID),
	)

	resp := address.ToResponse()
	return &resp, nil
}

// Get returns one address of the owner's contact.
func (s *AddressService) Get(ctx context.Context, username, contactID, addressID string) (*model.AddressResponse, error) {
	if err := s.resolveContact(ctx, username, contactID); err != nil {
		return nil, err
	}

	address, err := s.addresses.GetByID(ctx, contactID, addressID)
	if err != nil {
		return nil, err
	}
	resp := address.ToResponse()
	return &resp, nil
}

// List returns all addresses of the owner's contact, oldest first.
func (s *AddressService) List(ctx context.Context, username, contactID string) ([]model.AddressResponse, error) {
	if err := s.resolveContact(ctx, username, contactID); err != nil {
		return nil, err
	}

	addresses, err := s.addresses.ListByContact(ctx, contactID)
	if err != nil {
		s.logger.Error("failed to list addresses",
			slog.String("contactId", contactID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing addresses: %w", err)
	}

	responses := make([]model.AddressResponse, 0, len(addresses))
	for i := range addresses {
		responses = append(responses, addresses[i].ToResponse())
	}
	return responses, nil
}

// Update replaces the address fields with the request payload. Like contact
// update, this is full replacement: empty optional fields clear their stored
// values.
func (s *AddressService) Update(ctx context.Context, username, contactID, addressID string, req model.UpdateAddressRequest) (*model.AddressResponse, error) {
	if err := validateAddressFields(req.Street, req.City, req.Province, req.Country, req.PostalCode); err != nil {
		return nil, err
	}
	if err := s.resolveContact(ctx, username, contactID); err != nil {
		return nil, err
	}

	address := &model.Address{
		ID:         addressID,
		ContactID:  contactID,
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	}
	if err := s.addresses.Update(ctx, address); err != nil {
		return nil, err
	}

	s.logger.Info("address updated", slog.String("id", addressID))

	resp := address.ToResponse()
	return &resp, nil
}

// Delete removes one address of the owner's contact.
func (s *AddressService) Delete(ctx context.Context, username, contactID, addressID string) error {
	if err := s.resolveContact(ctx, username, contactID); err != nil {
		return err
	}
	if err := s.addresses.Delete(ctx, contactID, addressID); err != nil {
		return err
	}

	s.logger.Info("address deleted", slog.String("id", addressID))
	return nil
}
