// Package validation checks registration and login drafts before any store
// access happens. Checks are pure; every failing field is reported at once.
package validation

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/cyberdefense/internal/client/models"
)

// Field names used as keys in Errors.
const (
	FieldFullName        = "fullName"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldRole            = "role"
	FieldOrganization    = "organization"
)

const (
	minFullNameLen = 2
	minPasswordLen = 8
)

// nonSpace mirrors the browser's [^\s@]: Go's \s is ASCII only, so the
// Unicode separators are listed explicitly.
const nonSpace = `[^\s\v\p{Z}\x{FEFF}@]`

var emailRe = regexp.MustCompile(`^` + nonSpace + `+@` + nonSpace + `+\.` + nonSpace + `+$`)

// Errors maps a field name to a human readable message. A missing key means
// the field is valid.
type Errors map[string]string

// Error lists the failing fields in a stable order.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "invalid fields: " + strings.Join(parts, "; ")
}

// Err returns e as an error, or nil when nothing failed.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ValidateRegistration applies the registration ruleset to d.
func ValidateRegistration(d models.RegisterDraft) Errors {
	errs := Errors{}

	switch name := strings.TrimSpace(d.FullName); {
	case name == "":
		errs[FieldFullName] = "Full name is required"
	case utf8.RuneCountInString(name) < minFullNameLen:
		errs[FieldFullName] = "Full name must be at least 2 characters"
	}

	checkEmail(errs, d.Email)

	switch {
	case d.Password == "":
		errs[FieldPassword] = "Password is required"
	case utf8.RuneCountInString(d.Password) < minPasswordLen:
		errs[FieldPassword] = "Password must be at least 8 characters"
	case !IsStrongPassword(d.Password):
		errs[FieldPassword] = "Password must contain at least one uppercase letter, one lowercase letter, and one number"
	}

	switch {
	case d.ConfirmPassword == "":
		errs[FieldConfirmPassword] = "Please confirm your password"
	case d.ConfirmPassword != d.Password:
		errs[FieldConfirmPassword] = "Passwords do not match"
	}

	switch {
	case d.Role == "":
		errs[FieldRole] = "Please select your role"
	case !models.Role(d.Role).Valid():
		errs[FieldRole] = "Please select a valid role"
	}

	if strings.TrimSpace(d.Organization) == "" {
		errs[FieldOrganization] = "Organization name is required"
	}

	return errs
}

// ValidateLogin applies the login ruleset. Password strength is not checked:
// login verifies an existing credential.
func ValidateLogin(d models.LoginDraft) Errors {
	errs := Errors{}

	checkEmail(errs, d.Email)

	if d.Password == "" {
		errs[FieldPassword] = "Password is required"
	}

	return errs
}

// IsEmail reports whether s has the local@domain.tld shape.
func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsStrongPassword reports whether s contains an ASCII lowercase letter, an
// ASCII uppercase letter and an ASCII digit. Length is checked separately.
func IsStrongPassword(s string) bool {
	var lower, upper, digit bool
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= '0' && c <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}

func checkEmail(errs Errors, email string) {
	switch {
	case email == "":
		errs[FieldEmail] = "Email is required"
	case !IsEmail(email):
		errs[FieldEmail] = "Please enter a valid email address"
	}
}
