package domain

import "time"

// Audit actions.
const (
	AuditOwnerRoleGranted     = "OWNER_ROLE_GRANTED"
	AuditStadiumCreated       = "STADIUM_AND_COACH_CREATED"
	AuditCoachCreated         = "COACH_CREATED"
	AuditOwnerCreated         = "STADIUM_OWNER_CREATED"
	AuditOwnerPasswordUpdated = "OWNER_PASSWORD_UPDATED"
	AuditOwnerStatusChanged   = "OWNER_STATUS_CHANGED"
	AuditOwnerCredentials     = "OWNER_CREDENTIALS_UPDATED"
	AuditSuperAdminBootstrap  = "SUPER_ADMIN_BOOTSTRAPPED"
)

// AuditEvent is an append-only record of a successful privileged mutation.
type AuditEvent struct {
	Action         string         `bson:"action"`
	ActorUID       string         `bson:"actorUid,omitempty"`
	TargetUID      string         `bson:"targetUid,omitempty"`
	OrganizationID string         `bson:"organizationId,omitempty"`
	Metadata       map[string]any `bson:"metadata,omitempty"`
	CreatedAt      time.Time      `bson:"createdAt"`
}
