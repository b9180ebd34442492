package handler

import (
	"time"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
)

// errorResponse documents the error envelope rendered by the HTTP error handler.
type errorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// --- Auth ---

type signupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required"`
	Username string `json:"username" validate:"omitempty,username"`
}

type loginRequest struct {
	// Identifier is an email, or the username of a provisioned owner.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

type sessionResponse struct {
	Success        bool        `json:"success"`
	UID            string      `json:"uid"`
	Email          string      `json:"email"`
	Role           domain.Role `json:"role,omitempty"`
	OrganizationID string      `json:"organizationId,omitempty"`
	Token          string      `json:"token"`
	ExpiresAt      time.Time   `json:"expiresAt"`
}

type syncRoleResponse struct {
	Success        bool        `json:"success"`
	Role           domain.Role `json:"role"`
	OrganizationID string      `json:"organizationId,omitempty"`
	Changed        bool        `json:"changed"`
	Message        string      `json:"message"`
}

type meResponse struct {
	Success bool                `json:"success"`
	Profile *domain.UserProfile `json:"profile"`
	Claims  domain.Claims       `json:"claims"`
}

// --- Owner ---

type createStadiumRequest struct {
	StadiumName   string `json:"stadiumName"   validate:"required"`
	Location      string `json:"location"      validate:"required"`
	CoachFullName string `json:"coachFullName" validate:"required"`
	CoachEmail    string `json:"coachEmail"    validate:"required,email"`
	CoachPhone    string `json:"coachPhone"    validate:"required"`
	CoachUsername string `json:"coachUsername" validate:"required,username"`
	CoachPassword string `json:"coachPassword" validate:"required,min=8"`
}

type createStadiumResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	StadiumID string `json:"stadiumId"`
	CoachUID  string `json:"coachUid"`
}

type createCoachRequest struct {
	Email         string `json:"email"         validate:"required,email"`
	Password      string `json:"password"      validate:"required,min=8"`
	DisplayName   string `json:"displayName"   validate:"required"`
	CoachUsername string `json:"coachUsername" validate:"omitempty,username"`
}

type createCoachResponse struct {
	Success bool   `json:"success"`
	UID     string `json:"uid"`
}

type stadiumListResponse struct {
	Success  bool              `json:"success"`
	Stadiums []*domain.Stadium `json:"stadiums"`
}

// --- Super-admin ---

type grantOwnerRequest struct {
	TargetUID      string `json:"targetUid"      validate:"required"`
	OrganizationID string `json:"organizationId" validate:"required"`
}

type createOwnerRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,min=8"`
}

type createOwnerResponse struct {
	Success        bool   `json:"success"`
	OwnerDocID     string `json:"ownerDocId"`
	UID            string `json:"uid"`
	Email          string `json:"email"`
	OrganizationID string `json:"organizationId"`
}

type ownerListResponse struct {
	Success bool                   `json:"success"`
	Owners  []*domain.StadiumOwner `json:"owners"`
}

type updateOwnerPasswordRequest struct {
	TargetUID   string `json:"targetUid"   validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type toggleOwnerStatusRequest struct {
	TargetUID  string `json:"targetUid"  validate:"required"`
	OwnerDocID string `json:"ownerDocId" validate:"required"`
	Status     string `json:"status"     validate:"required,oneof=active inactive suspended"`
}

type toggleOwnerStatusResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type updateOwnerCredentialsRequest struct {
	TargetUID   string `json:"targetUid"   validate:"required"`
	OwnerDocID  string `json:"ownerDocId"  validate:"required"`
	NewUsername string `json:"newUsername" validate:"required,username"`
	NewPassword string `json:"newPassword" validate:"omitempty,min=8"`
}

type updateOwnerCredentialsResponse struct {
	Success         bool   `json:"success"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	PasswordUpdated bool   `json:"passwordUpdated"`
}
