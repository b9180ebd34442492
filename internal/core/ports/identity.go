package ports

import (
	"context"
	"time"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
)

// NewAccount carries the data needed to create an identity-system account.
type NewAccount struct {
	Email       string
	Password    string
	DisplayName string
}

// AccountUpdate lists the account attributes to change; nil fields are left
// untouched.
type AccountUpdate struct {
	Email    *string
	Password *string
	Disabled *bool
}

// IdentityProvider is the identity system: account creation, credential
// checks and account updates. Email uniqueness is enforced here.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, in NewAccount) (*domain.Account, error)
	GetAccount(ctx context.Context, uid string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// Authenticate returns domain.ErrInvalidCredentials for an unknown email
	// or a wrong password alike.
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, uid string, upd AccountUpdate) error
}

// ClaimsStore holds the claims attached to each user's credentials.
type ClaimsStore interface {
	// Get returns empty claims when none are set.
	Get(ctx context.Context, uid string) (domain.Claims, error)
	// Set replaces the stored claims entirely.
	Set(ctx context.Context, uid string, claims domain.Claims) error
}

// SessionStore records per-user session revocations.
type SessionStore interface {
	RevokeSessions(ctx context.Context, uid string) error
	// RevokedSince returns the zero time when sessions were never revoked.
	RevokedSince(ctx context.Context, uid string) (time.Time, error)
}
