package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/contact-manager/internal/apperror"
	"github.com/sakif/contact-manager/internal/model"
	"github.com/sakif/contact-manager/internal/repository"
	"github.com/sakif/contact-manager/internal/search"
)

// ContactRepo implements repository.ContactRepository on the shared
// connection.
type ContactRepo struct {
	db *DB
}

// NewContactRepo creates the sqlite-backed contact repository.
func NewContactRepo(db *DB) *ContactRepo {
	return &ContactRepo{db: db}
}

// compile-time check that *ContactRepo implements repository.ContactRepository
var _ repository.ContactRepository = (*ContactRepo)(nil)

const contactColumns = `id, username, first_name, last_name, email, phone, created_at, updated_at`

// Create inserts a new contact, generating its ID.
//
// xid IDs are time-sortable: the first bytes encode the creation timestamp.
// That makes ORDER BY id equal to insertion order, which is what gives the
// search endpoint its stable, repeatable page boundaries.
func (r *ContactRepo) Create(ctx context.Context, contact *model.Contact) error {
	contact.ID = xid.New().String()

	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO contacts (id, username, first_name, last_name, email, phone, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		contact.ID,
		contact.Username,
		contact.FirstName,
		nullable(contact.LastName),
		nullable(contact.Email),
		nullable(contact.Phone),
		contact.CreatedAt,
		contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating contact: %w", err)
	}
	return nil
}

// GetByID retrieves one contact, scoped to its owner. The username lives in
// the WHERE clause, so another tenant's contact ID and a nonexistent ID are
// the same ErrNoRows — deliberately indistinguishable.
func (r *ContactRepo) GetByID(ctx context.Context, username, id string) (*model.Contact, error) {
	row := r.db.conn.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE username = ? AND id = ?`,
		username, id)

	contact, err := scanContact(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Contact")
		}
		return nil, fmt.Errorf("sqlite: getting contact %s: %w", id, err)
	}
	return contact, nil
}

// Update rewrites the contact's mutable fields. The WHERE clause scopes by
// owner as well as id; RowsAffected == 0 covers both "gone" and "not yours".
func (r *ContactRepo) Update(ctx context.Context, contact *model.Contact) error {
	contact.UpdatedAt = time.Now()

	result, err := r.db.conn.ExecContext(ctx,
		`UPDATE contacts
		 SET first_name = ?, last_name = ?, email = ?, phone = ?, updated_at = ?
		 WHERE username = ? AND id = ?`,
		contact.FirstName,
		nullable(contact.LastName),
		nullable(contact.Email),
		nullable(contact.Phone),
		contact.UpdatedAt,
		contact.Username,
		contact.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating contact %s: %w", contact.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("Contact")
	}
	return nil
}

// Delete removes the owner's contact. Addresses go with it via the
// ON DELETE CASCADE on addresses.contact_id.
func (r *ContactRepo) Delete(ctx context.Context, username, id string) error {
	result, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM contacts WHERE username = ? AND id = ?`,
		username, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting contact %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("Contact")
	}
	return nil
}

// Count returns how many contacts match the specification across the whole
// table — no page window. The search endpoint derives totalPage from this,
// which is why an out-of-range page still reports correct totals.
func (r *ContactRepo) Count(ctx context.Context, spec search.Specification) (int, error) {
	where, args := specToSQL(spec)

	var count int
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contacts WHERE `+where, args...,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting contacts: %w", err)
	}
	return count, nil
}

// Search returns the matching contacts inside the page window, in id order.
func (r *ContactRepo) Search(ctx context.Context, spec search.Specification, opts repository.PageOptions) ([]model.Contact, error) {
	where, args := specToSQL(spec)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contacts
		 WHERE `+where+`
		 ORDER BY id
		 LIMIT ? OFFSET ?`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: searching contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]model.Contact, 0, opts.Limit)
	for rows.Next() {
		contact, err := scanContact(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning contact row: %w", err)
		}
		contacts = append(contacts, *contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating contacts: %w", err)
	}

	return contacts, nil
}

// specToSQL translates a specification into a WHERE fragment and its
// arguments, preserving clause order.
//
// Containment uses instr() instead of LIKE so that '%' and '_' in the search
// string mean themselves — the specification promises "exact substring as
// supplied", and LIKE would need escaping to honour that. instr() against a
// NULL column yields NULL, which is falsy in a WHERE clause, so contacts
// without an email can never match an email clause; COALESCE makes that
// explicit rather than implicit.
func specToSQL(spec search.Specification) (string, []any) {
	conds := make([]string, 0, len(spec))
	args := make([]any, 0, len(spec)+1)

	for _, cl := range spec {
		switch cl.Field {
		case search.FieldOwner:
			conds = append(conds, `username = ?`)
			args = append(args, cl.Value)
		case search.FieldName:
			conds = append(conds, `(instr(first_name, ?) > 0 OR instr(COALESCE(last_name, ''), ?) > 0)`)
			args = append(args, cl.Value, cl.Value)
		case search.FieldEmail:
			conds = append(conds, `instr(COALESCE(email, ''), ?) > 0`)
			args = append(args, cl.Value)
		case search.FieldPhone:
			conds = append(conds, `instr(COALESCE(phone, ''), ?) > 0`)
			args = append(args, cl.Value)
		default:
			// Fail closed, mirroring Specification.Matches.
			conds = append(conds, `1 = 0`)
		}
	}

	return strings.Join(conds, " AND "), args
}

// scanContact reads a contact from either a Row or Rows via the shared Scan
// signature.
func scanContact(scan func(dest ...any) error) (*model.Contact, error) {
	var c model.Contact
	var lastName, email, phone sql.NullString

	err := scan(
		&c.ID,
		&c.Username,
		&c.FirstName,
		&lastName,
		&email,
		&phone,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.LastName = stringValue(lastName)
	c.Email = stringValue(email)
	c.Phone = stringValue(phone)
	return &c, nil
}
