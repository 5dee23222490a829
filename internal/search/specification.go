// Package search builds the predicate behind the contact search endpoint.
//
// A Specification is an ordered list of clauses combined with logical AND.
// It is deliberately storage-agnostic: the sqlite repository translates it to
// SQL, the in-memory Matches method evaluates it directly, and both must
// agree. That lets the composition rules be unit-tested without a database
// and keeps the service layer ignorant of the query language.
package search

import (
	"strings"

	"github.com/sakif/contact-manager/internal/model"
)

// Op is a clause operator.
type Op int

const (
	// OpEquals matches when the stored value equals the clause value exactly.
	OpEquals Op = iota
	// OpContains matches when the stored value contains the clause value
	// anywhere, with the value exactly as supplied — case-sensitive, no
	// trimming, not anchored to word or prefix boundaries.
	OpContains
)

// Clause fields. FieldName is special: it matches against first name OR last
// name, the only disjunction in the model. Everything else is one column.
const (
	FieldOwner = "owner"
	FieldName  = "name"
	FieldEmail = "email"
	FieldPhone = "phone"
)

// Clause is one field-level condition.
type Clause struct {
	Field string
	Op    Op
	Value string
}

// Specification is an AND of clauses, evaluated in order.
type Specification []Clause

// ForContacts builds the specification for a contact search.
//
// The owner clause comes first and is ALWAYS present — it is the tenancy
// boundary, not a search option. The optional criteria each contribute one
// clause when non-empty; adding a criterion can only shrink the match set.
func ForContacts(owner string, criteria model.SearchCriteria) Specification {
	spec := Specification{
		{Field: FieldOwner, Op: OpEquals, Value: owner},
	}
	if criteria.Name != "" {
		spec = append(spec, Clause{Field: FieldName, Op: OpContains, Value: criteria.Name})
	}
	if criteria.Email != "" {
		spec = append(spec, Clause{Field: FieldEmail, Op: OpContains, Value: criteria.Email})
	}
	if criteria.Phone != "" {
		spec = append(spec, Clause{Field: FieldPhone, Op: OpContains, Value: criteria.Phone})
	}
	return spec
}

// Matches evaluates the specification against a contact in memory.
// This is the reference semantics; the SQL translation in the sqlite
// repository must return exactly the rows for which Matches is true.
func (s Specification) Matches(c model.Contact) bool {
	for _, clause := range s {
		if !clause.matches(c) {
			return false
		}
	}
	return true
}

func (cl Clause) matches(c model.Contact) bool {
	switch cl.Field {
	case FieldOwner:
		return c.Username == cl.Value
	case FieldName:
		return strings.Contains(c.FirstName, cl.Value) || strings.Contains(c.LastName, cl.Value)
	case FieldEmail:
		return strings.Contains(c.Email, cl.Value)
	case FieldPhone:
		return strings.Contains(c.Phone, cl.Value)
	default:
		// Unknown fields match nothing — a misbuilt spec fails closed.
		return false
	}
}
