package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error a service returns either is, or wraps, one of
// these; anything else is treated as internal.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrFailedPrecondition = errors.New("failed precondition")
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)
	ErrSessionRevoked     = fmt.Errorf("%w: session revoked", ErrUnauthenticated)
	ErrAccountDisabled    = fmt.Errorf("%w: account disabled", ErrPermissionDenied)

	ErrProfileNotFound = fmt.Errorf("%w: user profile not found", ErrNotFound)
	ErrAccountNotFound = fmt.Errorf("%w: account not found", ErrNotFound)
	ErrOwnerNotFound   = fmt.Errorf("%w: stadium owner not found", ErrNotFound)

	ErrEmailExists    = fmt.Errorf("%w: email already in use", ErrAlreadyExists)
	ErrUsernameTaken  = fmt.Errorf("%w: username already taken", ErrAlreadyExists)
	ErrStadiumExists  = fmt.Errorf("%w: a stadium with this name already exists", ErrAlreadyExists)
	ErrOwnerMismatch  = fmt.Errorf("%w: owner record does not belong to target user", ErrInvalidArgument)
	ErrTargetNotOwner = fmt.Errorf("%w: target user is not an owner", ErrInvalidArgument)
	ErrNoOrganization = fmt.Errorf("%w: caller profile has no organization", ErrFailedPrecondition)
)

// RoleRequiredError reports a caller whose role does not allow an operation.
func RoleRequiredError(required Role) error {
	return fmt.Errorf("%w: requires %s role", ErrPermissionDenied, required)
}

// MissingFieldError reports an absent or empty request field.
func MissingFieldError(field string) error {
	return fmt.Errorf("%w: %s is required", ErrInvalidArgument, field)
}

var kinds = []error{
	ErrUnauthenticated,
	ErrPermissionDenied,
	ErrInvalidArgument,
	ErrAlreadyExists,
	ErrNotFound,
	ErrFailedPrecondition,
}

// KindOf returns the error kind err wraps, or nil for an internal error.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
