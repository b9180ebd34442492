package ports

import (
	"context"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
)

type GrantOwnerRoleInput struct {
	TargetUID      string
	OrganizationID string
}

type CreateStadiumAndCoachInput struct {
	StadiumName   string
	Location      string
	CoachFullName string
	CoachEmail    string
	CoachPhone    string
	CoachUsername string
	CoachPassword string
}

type CreateCoachUserInput struct {
	Email         string
	Password      string
	DisplayName   string
	CoachUsername string
}

type CreateStadiumOwnerInput struct {
	FullName string
	Username string
	Password string
}

type UpdateOwnerPasswordInput struct {
	TargetUID   string
	NewPassword string
}

type ToggleOwnerStatusInput struct {
	TargetUID  string
	OwnerDocID string
	Status     domain.OwnerStatus
}

type UpdateOwnerCredentialsInput struct {
	TargetUID   string
	OwnerDocID  string
	NewUsername string
	NewPassword string
}

type CreatedStadium struct {
	StadiumID string
	CoachUID  string
}

type CreatedOwner struct {
	OwnerDocID     string
	UID            string
	Email          string
	OrganizationID string
}

type OwnerCredentialsResult struct {
	Email           string
	Username        string
	PasswordUpdated bool
}

// AccountService groups the privileged mutators. Each method checks the
// caller's role before touching any store.
type AccountService interface {
	GrantOwnerRole(ctx context.Context, caller domain.Caller, in GrantOwnerRoleInput) error
	CreateStadiumAndCoach(ctx context.Context, caller domain.Caller, in CreateStadiumAndCoachInput) (*CreatedStadium, error)
	CreateCoachUser(ctx context.Context, caller domain.Caller, in CreateCoachUserInput) (string, error)
	CreateStadiumOwner(ctx context.Context, caller domain.Caller, in CreateStadiumOwnerInput) (*CreatedOwner, error)
	UpdateOwnerPassword(ctx context.Context, caller domain.Caller, in UpdateOwnerPasswordInput) error
	ToggleOwnerStatus(ctx context.Context, caller domain.Caller, in ToggleOwnerStatusInput) error
	UpdateOwnerCredentials(ctx context.Context, caller domain.Caller, in UpdateOwnerCredentialsInput) (*OwnerCredentialsResult, error)
	ListStadiums(ctx context.Context, caller domain.Caller) ([]*domain.Stadium, error)
	ListOwners(ctx context.Context, caller domain.Caller) ([]*domain.StadiumOwner, error)
}
