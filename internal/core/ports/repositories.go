package ports

import (
	"context"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
)

// ProfileRepository persists UserProfile documents (users/{uid}).
type ProfileRepository interface {
	Get(ctx context.Context, uid string) (*domain.UserProfile, error)
	Create(ctx context.Context, p *domain.UserProfile) error
	// UpsertRole sets role and organization on the profile, creating it with
	// the given email when absent.
	UpsertRole(ctx context.Context, uid string, role domain.Role, organizationID, email string) error
	UpdateCredentials(ctx context.Context, uid, username, email string) error
	UsernameExists(ctx context.Context, username string) (bool, error)
	// ListCoachIDs returns the uids of every coach profile whose ownerId is ownerUID.
	ListCoachIDs(ctx context.Context, ownerUID string) ([]string, error)
}

// StadiumRepository persists stadiums/{id} documents.
type StadiumRepository interface {
	// ExistsByName matches the trimmed name case-insensitively within an organization.
	ExistsByName(ctx context.Context, organizationID, name string) (bool, error)
	Create(ctx context.Context, s *domain.Stadium) error
	ListByOrganization(ctx context.Context, organizationID string) ([]*domain.Stadium, error)
}

// OwnerRepository persists stadium_owners/{id} documents.
type OwnerRepository interface {
	Get(ctx context.Context, id string) (*domain.StadiumOwner, error)
	Create(ctx context.Context, o *domain.StadiumOwner) error
	UpdateStatus(ctx context.Context, id string, status domain.OwnerStatus) error
	UpdateUsername(ctx context.Context, id, username string) error
	UsernameExists(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]*domain.StadiumOwner, error)
}

// Batch runs fn as one all-or-nothing multi-document write. Repository calls
// made with the context handed to fn take part in the batch.
type Batch interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuditRepository appends audit events.
type AuditRepository interface {
	Append(ctx context.Context, event *domain.AuditEvent) error
}

// AuditSink accepts audit events for asynchronous persistence.
type AuditSink interface {
	Record(event domain.AuditEvent)
}
