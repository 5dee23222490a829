// Package validation is the gate every inbound payload passes through before
// business logic runs.
//
// DESIGN:
// Constraints are declared as data, not written as ad-hoc if-chains. A caller
// lists its fields and the rules each must satisfy:
//
//	err := validation.Validate(
//	    validation.Field("username", req.Username, validation.Required(), validation.MaxLength(100)),
//	    validation.Field("email", req.Email, validation.ValidEmail()),
//	)
//
// Every rule is evaluated (no short-circuit between fields), violations are
// collected in declaration order, and the whole set is flattened into ONE
// apperror.BadRequest message. Declaration order makes the message
// deterministic run-to-run for the same payload shape — clients and tests
// match against the exact string.
package validation

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/sakif/contact-manager/internal/apperror"
)

// Rule checks a single field value. It returns the violation description, or
// "" when the value is acceptable.
type Rule func(value string) string

// FieldRules binds a named field value to the rules it must satisfy.
// Build one with Field().
type FieldRules struct {
	name  string
	value string
	rules []Rule
}

// Field declares the constraints for one payload field.
func Field(name, value string, rules ...Rule) FieldRules {
	return FieldRules{name: name, value: value, rules: rules}
}

// Validate runs every rule of every field and returns nil when all pass.
// On any violation it returns an apperror.BadRequest whose message joins all
// violations as "field: description; field: description".
func Validate(fields ...FieldRules) error {
	var violations []string
	for _, f := range fields {
		for _, rule := range f.rules {
			if desc := rule(f.value); desc != "" {
				violations = append(violations, fmt.Sprintf("%s: %s", f.name, desc))
			}
		}
	}
	if len(violations) == 0 {
		return nil
	}
	return apperror.BadRequest(strings.Join(violations, "; "))
}

// Required rejects blank values. Whitespace-only counts as blank — a name of
// three spaces is not a name.
func Required() Rule {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return "must not be blank"
		}
		return ""
	}
}

// MaxLength rejects values longer than max bytes. Blank values pass — pair
// with Required() when the field is mandatory.
func MaxLength(max int) Rule {
	return func(value string) string {
		if len(value) > max {
			return fmt.Sprintf("must be at most %d characters", max)
		}
		return ""
	}
}

// ValidEmail rejects values that do not parse as an RFC 5322 address.
// Blank values pass: optional email fields only need to be well-formed when
// they are actually provided.
func ValidEmail() Rule {
	return func(value string) string {
		if value == "" {
			return ""
		}
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return "must be a well-formed email address"
		}
		return ""
	}
}
