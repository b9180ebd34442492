package domain

// Role is the authorization role stored on a user's profile and mirrored in
// their session claims.
type Role string

const (
	RoleOwner      Role = "owner"
	RoleCoach      Role = "coach"
	RoleSuperAdmin Role = "super-admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleCoach, RoleSuperAdmin:
		return true
	}
	return false
}

// RequiresOrganization reports whether a profile with this role must belong to
// an organization.
func (r Role) RequiresOrganization() bool {
	return r == RoleOwner || r == RoleCoach
}

// ParseRole converts a raw claim or document value to a Role. Unknown values
// yield the empty role.
func ParseRole(s string) Role {
	r := Role(s)
	if !r.Valid() {
		return ""
	}
	return r
}
