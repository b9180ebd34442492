package domain

import "time"

// UserProfile is the authoritative per-user record of role and organizational
// linkage, keyed by the identity uid.
type UserProfile struct {
	UID            string    `json:"uid" bson:"_id"`
	Role           Role      `json:"role,omitempty" bson:"role,omitempty"`
	OrganizationID string    `json:"organizationId,omitempty" bson:"organizationId,omitempty"`
	OwnerID        string    `json:"ownerId,omitempty" bson:"ownerId,omitempty"`
	Username       string    `json:"username,omitempty" bson:"username,omitempty"`
	Email          string    `json:"email,omitempty" bson:"email,omitempty"`
	FullName       string    `json:"fullName,omitempty" bson:"fullName,omitempty"`
	Phone          string    `json:"phone,omitempty" bson:"phone,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Account is an identity-system user.
type Account struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName,omitempty"`
	PasswordHash string    `json:"-"`
	Disabled     bool      `json:"disabled"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Session is a decoded, verified session credential.
type Session struct {
	UID       string
	Email     string
	Claims    Claims
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Caller identifies the authenticated principal of a privileged request. Role
// comes from the session claims unless a handler resolved it from the profile.
type Caller struct {
	UID  string
	Role Role
}
