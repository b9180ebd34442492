package service

import (
	"strings"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
)

// normalizeUsername lower-cases and trims a login handle.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// usernameEmail derives the identity-system email of an account that logs in
// with a username.
func usernameEmail(username, emailDomain string) string {
	return normalizeUsername(username) + "@" + emailDomain
}

// loginEmail maps a login identifier to an email. Identifiers without an "@"
// are usernames.
func loginEmail(identifier, emailDomain string) string {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return strings.ToLower(identifier)
	}
	return usernameEmail(identifier, emailDomain)
}

type field struct {
	name  string
	value string
}

// required returns an invalid-argument error naming the first empty field.
func required(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return domain.MissingFieldError(f.name)
		}
	}
	return nil
}
