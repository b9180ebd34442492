package domain

import "time"

// OwnerStatus is the lifecycle state of a super-admin-provisioned owner.
type OwnerStatus string

const (
	OwnerActive    OwnerStatus = "active"
	OwnerInactive  OwnerStatus = "inactive"
	OwnerSuspended OwnerStatus = "suspended"
)

// Valid reports whether s is a known status.
func (s OwnerStatus) Valid() bool {
	switch s {
	case OwnerActive, OwnerInactive, OwnerSuspended:
		return true
	}
	return false
}

// RevokesSessions reports whether moving an owner into s must end the
// sessions of the owner and their coaches.
func (s OwnerStatus) RevokesSessions() bool {
	return s == OwnerInactive || s == OwnerSuspended
}

// OwnerCredentials holds the login handle of a provisioned owner.
type OwnerCredentials struct {
	Username string `json:"username" bson:"username"`
}

// StadiumOwner is the record the super-admin keeps for each owner account it
// created. It must stay consistent with the owner's UserProfile.
type StadiumOwner struct {
	ID             string           `json:"id" bson:"_id"`
	AuthUID        string           `json:"authUid" bson:"authUid"`
	FullName       string           `json:"fullName" bson:"fullName"`
	OrganizationID string           `json:"organizationId" bson:"organizationId"`
	Credentials    OwnerCredentials `json:"credentials" bson:"credentials"`
	Status         OwnerStatus      `json:"status" bson:"status"`
	CreatedAt      time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt" bson:"updatedAt"`
}
