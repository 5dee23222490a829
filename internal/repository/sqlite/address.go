package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/contact-manager/internal/apperror"
	"github.com/sakif/contact-manager/internal/model"
	"github.com/sakif/contact-manager/internal/repository"
)

// AddressRepo implements repository.AddressRepository on the shared
// connection.
type AddressRepo struct {
	db *DB
}

// NewAddressRepo creates the sqlite-backed address repository.
func NewAddressRepo(db *DB) *AddressRepo {
	return &AddressRepo{db: db}
}

// compile-time check that *AddressRepo implements repository.AddressRepository
var _ repository.AddressRepository = (*AddressRepo)(nil)

const addressColumns = `id, contact_id, street, city, province, country, postal_code, created_at, updated_at`

// Tenancy note: these queries scope by contact_id only. The service resolves
// the contact under the authenticated user before calling in, so an address
// can never be reached across tenants.

func (r *AddressRepo) Create(ctx context.Context, address *model.Address) error {
	address.ID = xid.New().String()

	now := time.Now()
	address.CreatedAt = now
	address.UpdatedAt = now

	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO addresses (id, contact_id, street, city, province, country, postal_code, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		address.ID,
		address.ContactID,
		nullable(address.Street),
		nullable(address.City),
		nullable(address.Province),
		address.Country,
		nullable(address.PostalCode),
		address.CreatedAt,
		address.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating address: %w", err)
	}
	return nil
}

func (r *AddressRepo) GetByID(ctx context.Context, contactID, addressID string) (*model.Address, error) {
	row := r.db.conn.QueryRowContext(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE contact_id = ? AND id = ?`,
		contactID, addressID)

	address, err := scanAddress(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Address")
		}
		return nil, fmt.Errorf("sqlite: getting address %s: %w", addressID, err)
	}
	return address, nil
}

func (r *AddressRepo) ListByContact(ctx context.Context, contactID string) ([]model.Address, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE contact_id = ? ORDER BY id`,
		contactID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing addresses: %w", err)
	}
	defer rows.Close()

	addresses := make([]model.Address, 0)
	for rows.Next() {
		address, err := scanAddress(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning address row: %w", err)
		}
		addresses = append(addresses, *address)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating addresses: %w", err)
	}

	return addresses, nil
}

func (r *AddressRepo) Update(ctx context.Context, address *model.Address) error {
	address.UpdatedAt = time.Now()

	result, err := r.db.conn.ExecContext(ctx,
		`UPDATE addresses
		 SET street = ?, city = ?, province = ?, country = ?, postal_code = ?, updated_at = ?
		 WHERE contact_id = ? AND id = ?`,
		nullable(address.Street),
		nullable(address.City),
		nullable(address.Province),
		address.Country,
		nullable(address.PostalCode),
		address.UpdatedAt,
		address.ContactID,
		address.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating address %s: %w", address.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("Address")
	}
	return nil
}

func (r *AddressRepo) Delete(ctx context.Context, contactID, addressID string) error {
	result, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM addresses WHERE contact_id = ? AND id = ?`,
		contactID, addressID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting address %s: %w", addressID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("Address")
	}
	return nil
}

func scanAddress(scan func(dest ...any) error) (*model.Address, error) {
	var a model.Address
	var street, city, province, postalCode sql.NullString

	err := scan(
		&a.ID,
		&a.ContactID,
		&street,
		&city,
		&province,
		&a.Country,
		&postalCode,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Street = stringValue(street)
	a.City = stringValue(city)
	a.Province = stringValue(province)
	a.PostalCode = stringValue(postalCode)
	return &a, nil
}
