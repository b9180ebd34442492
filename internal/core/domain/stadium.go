package domain

import "time"

// CoachDetails is the copy of the assigned coach kept on a stadium document.
type CoachDetails struct {
	UID      string `json:"uid" bson:"uid"`
	FullName string `json:"fullName" bson:"fullName"`
	Email    string `json:"email" bson:"email"`
	Phone    string `json:"phone" bson:"phone"`
	Username string `json:"username" bson:"username"`
}

// Stadium is a venue belonging to an organization.
type Stadium struct {
	ID             string       `json:"id" bson:"_id"`
	Name           string       `json:"name" bson:"name"`
	Location       string       `json:"location" bson:"location"`
	OrganizationID string       `json:"organizationId" bson:"organizationId"`
	OwnerID        string       `json:"ownerId" bson:"ownerId"`
	CoachID        string       `json:"coachId" bson:"coachId"`
	CoachDetails   CoachDetails `json:"coachDetails" bson:"coachDetails"`
	CreatedAt      time.Time    `json:"createdAt" bson:"createdAt"`
}
