package ports

import (
	"context"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
)

// ReconcileResult reports the outcome of one role reconciliation.
type ReconcileResult struct {
	Role           domain.Role
	OrganizationID string
	Changed        bool
}

// RoleReconciler makes a user's claims match their profile.
type RoleReconciler interface {
	Reconcile(ctx context.Context, uid string) (ReconcileResult, error)
}

// SignupInput carries a public owner signup.
type SignupInput struct {
	Email    string
	Password string
	FullName string
	Username string
}

// SessionToken is a freshly minted credential.
type SessionToken struct {
	Token   string
	Session domain.Session
}

// MeResult describes the caller.
type MeResult struct {
	Profile *domain.UserProfile
	Claims  domain.Claims
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*SessionToken, error)
	// Login accepts an email or a provisioned owner's username.
	Login(ctx context.Context, identifier, password string) (*SessionToken, error)
	Refresh(ctx context.Context, session domain.Session) (*SessionToken, error)
	Verify(ctx context.Context, rawToken string) (*domain.Session, error)
	SyncRole(ctx context.Context, uid string) (ReconcileResult, error)
	Me(ctx context.Context, session domain.Session) (*MeResult, error)
}
