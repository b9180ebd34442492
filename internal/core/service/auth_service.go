package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
	"github.com/bhargav3929/myacademydask-sub000/internal/core/ports"
)

// AuthConfig holds the session settings of AuthService.
type AuthConfig struct {
	JWTSecret   string
	TokenTTL    time.Duration
	EmailDomain string
}

// AuthService implements signup, login and session handling.
type AuthService struct {
	identity   ports.IdentityProvider
	profiles   ports.ProfileRepository
	claims     ports.ClaimsStore
	sessions   ports.SessionStore
	reconciler ports.RoleReconciler
	cfg        AuthConfig
	log        zerolog.Logger
}

func NewAuthService(
	identity ports.IdentityProvider,
	profiles ports.ProfileRepository,
	claims ports.ClaimsStore,
	sessions ports.SessionStore,
	reconciler ports.RoleReconciler,
	cfg AuthConfig,
	log zerolog.Logger,
) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &AuthService{
		identity:   identity,
		profiles:   profiles,
		claims:     claims,
		sessions:   sessions,
		reconciler: reconciler,
		cfg:        cfg,
		log:        log,
	}
}

// Signup registers a new owner with a fresh organization and signs them in.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.SessionToken, error) {
	if err := required(field{"email", in.Email}, field{"password", in.Password}, field{"fullName", in.FullName}); err != nil {
		return nil, err
	}

	username := normalizeUsername(in.Username)
	if username != "" {
		taken, err := s.profiles.UsernameExists(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("signup: check username: %w", err)
		}
		if taken {
			return nil, domain.ErrUsernameTaken
		}
	}

	acct, err := s.identity.CreateAccount(ctx, ports.NewAccount{
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Password:    in.Password,
		DisplayName: in.FullName,
	})
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	now := time.Now().UTC()
	profile := &domain.UserProfile{
		UID:            acct.UID,
		Role:           domain.RoleOwner,
		OrganizationID: uuid.NewString(),
		Username:       username,
		Email:          acct.Email,
		FullName:       strings.TrimSpace(in.FullName),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		orphanedAccount(s.log, acct.UID, "signup", err)
		return nil, fmt.Errorf("signup: create profile: %w", err)
	}

	if _, err := s.reconciler.Reconcile(ctx, acct.UID); err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.log.Info().Str("uid", acct.UID).Str("organization_id", profile.OrganizationID).Msg("owner signed up")
	return s.mint(ctx, acct.UID, acct.Email)
}

// Login checks credentials, reconciles the user's claims and mints a session.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.SessionToken, error) {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	acct, err := s.identity.Authenticate(ctx, loginEmail(identifier, s.cfg.EmailDomain), password)
	if err != nil {
		return nil, err
	}
	if acct.Disabled {
		return nil, domain.ErrAccountDisabled
	}

	if _, err := s.reconciler.Reconcile(ctx, acct.UID); err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, fmt.Errorf("login: %w", err)
		}
		// Profile not written yet: sign in with whatever claims exist.
	}

	return s.mint(ctx, acct.UID, acct.Email)
}

// Refresh re-mints the caller's session from the current claims so that
// claims written since the last login become visible. A disabled account
// cannot refresh, even when its session revocation failed.
func (s *AuthService) Refresh(ctx context.Context, session domain.Session) (*ports.SessionToken, error) {
	acct, err := s.identity.GetAccount(ctx, session.UID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: account no longer exists", domain.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if acct.Disabled {
		return nil, domain.ErrAccountDisabled
	}
	return s.mint(ctx, acct.UID, acct.Email)
}

// Verify decodes a session token and rejects it when it was issued before the
// user's sessions were revoked. Both instants have second precision, so a
// token issued in the same second as the revocation is rejected too.
func (s *AuthService) Verify(ctx context.Context, rawToken string) (*domain.Session, error) {
	session, err := parseSession([]byte(s.cfg.JWTSecret), rawToken)
	if err != nil {
		return nil, err
	}

	revokedAt, err := s.sessions.RevokedSince(ctx, session.UID)
	if err != nil {
		return nil, fmt.Errorf("verify session: %w", err)
	}
	if !revokedAt.IsZero() && !session.IssuedAt.After(revokedAt) {
		return nil, domain.ErrSessionRevoked
	}
	return session, nil
}

// SyncRole reconciles the caller's claims on demand.
func (s *AuthService) SyncRole(ctx context.Context, uid string) (ports.ReconcileResult, error) {
	if uid == "" {
		return ports.ReconcileResult{}, domain.ErrUnauthenticated
	}
	return s.reconciler.Reconcile(ctx, uid)
}

// Me returns the caller's profile together with their stored claims.
func (s *AuthService) Me(ctx context.Context, session domain.Session) (*ports.MeResult, error) {
	profile, err := s.profiles.Get(ctx, session.UID)
	if err != nil {
		return nil, err
	}
	claims, err := s.claims.Get(ctx, session.UID)
	if err != nil {
		return nil, fmt.Errorf("me: read claims: %w", err)
	}
	return &ports.MeResult{Profile: profile, Claims: claims}, nil
}

func (s *AuthService) mint(ctx context.Context, uid, email string) (*ports.SessionToken, error) {
	claims, err := s.claims.Get(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("mint session: read claims: %w", err)
	}

	token, session, err := signSession([]byte(s.cfg.JWTSecret), uid, email, claims, time.Now(), s.cfg.TokenTTL)
	if err != nil {
		return nil, err
	}
	return &ports.SessionToken{Token: token, Session: session}, nil
}
