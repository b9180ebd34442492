package domain

import "maps"

// Claim attribute names, shared by the claims store and the session token.
const (
	ClaimRole           = "role"
	ClaimOrganizationID = "organizationId"
	ClaimOwnerID        = "ownerId"
)

// Claims is the authorization attribute set attached to a user's credential.
// It is a cached copy of a subset of UserProfile and may be stale.
type Claims struct {
	Role           Role   `json:"role,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
	OwnerID        string `json:"ownerId,omitempty"`
}

// ClaimsFor builds the claims a profile should produce. Fields that do not
// apply to the profile's role are omitted. A profile without a known role
// yields empty claims.
func ClaimsFor(p *UserProfile) Claims {
	if p == nil {
		return Claims{}
	}
	role := ParseRole(string(p.Role))
	if role == "" {
		return Claims{}
	}
	c := Claims{Role: role}
	if role.RequiresOrganization() {
		c.OrganizationID = p.OrganizationID
	}
	if role == RoleCoach {
		c.OwnerID = p.OwnerID
	}
	return c
}

// Attributes returns the non-empty claims as a flat map.
func (c Claims) Attributes() map[string]string {
	attrs := make(map[string]string, 3)
	if c.Role != "" {
		attrs[ClaimRole] = string(c.Role)
	}
	if c.OrganizationID != "" {
		attrs[ClaimOrganizationID] = c.OrganizationID
	}
	if c.OwnerID != "" {
		attrs[ClaimOwnerID] = c.OwnerID
	}
	return attrs
}

// ClaimsFromAttributes is the inverse of Attributes. Unknown keys are ignored.
func ClaimsFromAttributes(attrs map[string]string) Claims {
	return Claims{
		Role:           Role(attrs[ClaimRole]),
		OrganizationID: attrs[ClaimOrganizationID],
		OwnerID:        attrs[ClaimOwnerID],
	}
}

// Equal compares two claim sets as attribute sets, independent of field order.
func (c Claims) Equal(other Claims) bool {
	return maps.Equal(c.Attributes(), other.Attributes())
}

// IsEmpty reports whether no attribute is set.
func (c Claims) IsEmpty() bool {
	return len(c.Attributes()) == 0
}
