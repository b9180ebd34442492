package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
)

// sessionClaims is the JWT payload of a session credential.
type sessionClaims struct {
	jwt.RegisteredClaims
	Email          string `json:"email,omitempty"`
	Role           string `json:"role,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
	OwnerID        string `json:"ownerId,omitempty"`
}

func signSession(secret []byte, uid, email string, claims domain.Claims, issuedAt time.Time, ttl time.Duration) (string, domain.Session, error) {
	issuedAt = issuedAt.UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(ttl)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email:          email,
		Role:           string(claims.Role),
		OrganizationID: claims.OrganizationID,
		OwnerID:        claims.OwnerID,
	})

	signed, err := t.SignedString(secret)
	if err != nil {
		return "", domain.Session{}, fmt.Errorf("sign session: %w", err)
	}

	return signed, domain.Session{
		UID:       uid,
		Email:     email,
		Claims:    claims,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// parseSession checks signature and expiry. Every failure is reported as
// domain.ErrUnauthenticated.
func parseSession(secret []byte, raw string) (*domain.Session, error) {
	sc := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(raw, sc, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	}, jwt.WithIssuedAt(), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("%w: invalid session token", domain.ErrUnauthenticated)
	}
	if sc.Subject == "" || sc.IssuedAt == nil {
		return nil, fmt.Errorf("%w: incomplete session token", domain.ErrUnauthenticated)
	}

	return &domain.Session{
		UID:   sc.Subject,
		Email: sc.Email,
		Claims: domain.Claims{
			Role:           domain.Role(sc.Role),
			OrganizationID: sc.OrganizationID,
			OwnerID:        sc.OwnerID,
		},
		IssuedAt:  sc.IssuedAt.Time.UTC(),
		ExpiresAt: sc.ExpiresAt.Time.UTC(),
	}, nil
}
