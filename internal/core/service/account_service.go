package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bhargav3929/myacademydask-sub000/internal/api/metrics"
	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
	"github.com/bhargav3929/myacademydask-sub000/internal/core/ports"
)

// maxConcurrentRevocations bounds the session-revocation fan-out.
const maxConcurrentRevocations = 8

// AccountDeps bundles the stores AccountService writes to.
type AccountDeps struct {
	Identity   ports.IdentityProvider
	Profiles   ports.ProfileRepository
	Stadiums   ports.StadiumRepository
	Owners     ports.OwnerRepository
	Sessions   ports.SessionStore
	Batch      ports.Batch
	Reconciler ports.RoleReconciler
	Audit      ports.AuditSink
}

// AccountService implements the privileged account and role mutations.
//
// Identity-system writes always happen before document writes and the two
// are not covered by one transaction: when the document batch fails after the
// account was created, the account is left without a profile. That case is
// logged and counted, never compensated.
type AccountService struct {
	deps        AccountDeps
	emailDomain string
	log         zerolog.Logger
}

func NewAccountService(deps AccountDeps, emailDomain string, log zerolog.Logger) *AccountService {
	return &AccountService{deps: deps, emailDomain: emailDomain, log: log}
}

// GrantOwnerRole makes an existing account the owner of an organization.
func (s *AccountService) GrantOwnerRole(ctx context.Context, caller domain.Caller, in ports.GrantOwnerRoleInput) error {
	if err := requireRole(caller, domain.RoleSuperAdmin); err != nil {
		return err
	}
	if err := required(field{"targetUid", in.TargetUID}, field{"organizationId", in.OrganizationID}); err != nil {
		return err
	}

	acct, err := s.deps.Identity.GetAccount(ctx, in.TargetUID)
	if err != nil {
		return fmt.Errorf("grant owner role: %w", err)
	}

	if err := s.deps.Profiles.UpsertRole(ctx, acct.UID, domain.RoleOwner, in.OrganizationID, acct.Email); err != nil {
		return fmt.Errorf("grant owner role: update profile: %w", err)
	}
	if _, err := s.deps.Reconciler.Reconcile(ctx, acct.UID); err != nil {
		return fmt.Errorf("grant owner role: %w", err)
	}

	s.record(domain.AuditEvent{
		Action:         domain.AuditOwnerRoleGranted,
		ActorUID:       caller.UID,
		TargetUID:      acct.UID,
		OrganizationID: in.OrganizationID,
	})
	return nil
}

// CreateStadiumAndCoach creates a coach account and, in one batch, the
// coach's profile and a stadium assigned to them.
func (s *AccountService) CreateStadiumAndCoach(ctx context.Context, caller domain.Caller, in ports.CreateStadiumAndCoachInput) (*ports.CreatedStadium, error) {
	if err := requireRole(caller, domain.RoleOwner); err != nil {
		return nil, err
	}
	if err := required(
		field{"stadiumName", in.StadiumName},
		field{"location", in.Location},
		field{"coachFullName", in.CoachFullName},
		field{"coachEmail", in.CoachEmail},
		field{"coachPhone", in.CoachPhone},
		field{"coachUsername", in.CoachUsername},
		field{"coachPassword", in.CoachPassword},
	); err != nil {
		return nil, err
	}

	orgID, err := s.callerOrganization(ctx, caller)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.StadiumName)
	exists, err := s.deps.Stadiums.ExistsByName(ctx, orgID, name)
	if err != nil {
		return nil, fmt.Errorf("create stadium: check name: %w", err)
	}
	if exists {
		return nil, domain.ErrStadiumExists
	}

	username := normalizeUsername(in.CoachUsername)
	if err := s.ensureUsernameFree(ctx, username); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.CoachEmail))
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	acct, err := s.deps.Identity.CreateAccount(ctx, ports.NewAccount{
		Email:       email,
		Password:    in.CoachPassword,
		DisplayName: in.CoachFullName,
	})
	if err != nil {
		return nil, fmt.Errorf("create stadium: create coach account: %w", err)
	}

	now := time.Now().UTC()
	profile := &domain.UserProfile{
		UID:            acct.UID,
		Role:           domain.RoleCoach,
		OrganizationID: orgID,
		OwnerID:        caller.UID,
		Username:       username,
		Email:          email,
		FullName:       strings.TrimSpace(in.CoachFullName),
		Phone:          strings.TrimSpace(in.CoachPhone),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	stadium := &domain.Stadium{
		ID:             uuid.NewString(),
		Name:           name,
		Location:       strings.TrimSpace(in.Location),
		OrganizationID: orgID,
		OwnerID:        caller.UID,
		CoachID:        acct.UID,
		CoachDetails: domain.CoachDetails{
			UID:      acct.UID,
			FullName: profile.FullName,
			Email:    email,
			Phone:    profile.Phone,
			Username: username,
		},
		CreatedAt: now,
	}

	err = s.deps.Batch.Run(ctx, func(ctx context.Context) error {
		if err := s.deps.Profiles.Create(ctx, profile); err != nil {
			return fmt.Errorf("coach profile: %w", err)
		}
		if err := s.deps.Stadiums.Create(ctx, stadium); err != nil {
			return fmt.Errorf("stadium: %w", err)
		}
		return nil
	})
	if err != nil {
		orphanedAccount(s.log, acct.UID, "create-stadium-and-coach", err)
		return nil, fmt.Errorf("create stadium: %w", err)
	}

	s.syncClaims(ctx, acct.UID)
	s.record(domain.AuditEvent{
		Action:         domain.AuditStadiumCreated,
		ActorUID:       caller.UID,
		TargetUID:      acct.UID,
		OrganizationID: orgID,
		Metadata:       map[string]any{"stadiumId": stadium.ID, "stadiumName": name},
	})

	s.log.Info().
		Str("stadium_id", stadium.ID).
		Str("coach_uid", acct.UID).
		Str("organization_id", orgID).
		Msg("stadium and coach created")

	return &ports.CreatedStadium{StadiumID: stadium.ID, CoachUID: acct.UID}, nil
}

// CreateCoachUser creates a coach account and profile in the caller's
// organization and returns the new uid.
func (s *AccountService) CreateCoachUser(ctx context.Context, caller domain.Caller, in ports.CreateCoachUserInput) (string, error) {
	if err := requireRole(caller, domain.RoleOwner); err != nil {
		return "", err
	}
	if err := required(field{"email", in.Email}, field{"password", in.Password}, field{"displayName", in.DisplayName}); err != nil {
		return "", err
	}

	orgID, err := s.callerOrganization(ctx, caller)
	if err != nil {
		return "", err
	}

	username := normalizeUsername(in.CoachUsername)
	if username != "" {
		if err := s.ensureUsernameFree(ctx, username); err != nil {
			return "", err
		}
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return "", err
	}

	acct, err := s.deps.Identity.CreateAccount(ctx, ports.NewAccount{
		Email:       email,
		Password:    in.Password,
		DisplayName: in.DisplayName,
	})
	if err != nil {
		return "", fmt.Errorf("create coach: %w", err)
	}

	now := time.Now().UTC()
	err = s.deps.Profiles.Create(ctx, &domain.UserProfile{
		UID:            acct.UID,
		Role:           domain.RoleCoach,
		OrganizationID: orgID,
		OwnerID:        caller.UID,
		Username:       username,
		Email:          email,
		FullName:       strings.TrimSpace(in.DisplayName),
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		orphanedAccount(s.log, acct.UID, "create-coach-user", err)
		return "", fmt.Errorf("create coach: create profile: %w", err)
	}

	s.syncClaims(ctx, acct.UID)
	s.record(domain.AuditEvent{
		Action:         domain.AuditCoachCreated,
		ActorUID:       caller.UID,
		TargetUID:      acct.UID,
		OrganizationID: orgID,
	})
	return acct.UID, nil
}

// CreateStadiumOwner provisions an owner who logs in with a username. The
// owner's profile and stadium_owners record are written in one batch.
func (s *AccountService) CreateStadiumOwner(ctx context.Context, caller domain.Caller, in ports.CreateStadiumOwnerInput) (*ports.CreatedOwner, error) {
	if err := requireRole(caller, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	if err := required(field{"fullName", in.FullName}, field{"username", in.Username}, field{"password", in.Password}); err != nil {
		return nil, err
	}

	username := normalizeUsername(in.Username)
	if err := s.ensureUsernameFree(ctx, username); err != nil {
		return nil, err
	}
	email := usernameEmail(username, s.emailDomain)
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	acct, err := s.deps.Identity.CreateAccount(ctx, ports.NewAccount{
		Email:       email,
		Password:    in.Password,
		DisplayName: in.FullName,
	})
	if err != nil {
		return nil, fmt.Errorf("create owner: %w", err)
	}

	now := time.Now().UTC()
	orgID := uuid.NewString()
	fullName := strings.TrimSpace(in.FullName)
	owner := &domain.StadiumOwner{
		ID:             uuid.NewString(),
		AuthUID:        acct.UID,
		FullName:       fullName,
		OrganizationID: orgID,
		Credentials:    domain.OwnerCredentials{Username: username},
		Status:         domain.OwnerActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.deps.Batch.Run(ctx, func(ctx context.Context) error {
		if err := s.deps.Profiles.Create(ctx, &domain.UserProfile{
			UID:            acct.UID,
			Role:           domain.RoleOwner,
			OrganizationID: orgID,
			Username:       username,
			Email:          email,
			FullName:       fullName,
			CreatedAt:      now,
			UpdatedAt:      now,
		}); err != nil {
			return fmt.Errorf("owner profile: %w", err)
		}
		if err := s.deps.Owners.Create(ctx, owner); err != nil {
			return fmt.Errorf("owner record: %w", err)
		}
		return nil
	})
	if err != nil {
		orphanedAccount(s.log, acct.UID, "create-stadium-owner", err)
		return nil, fmt.Errorf("create owner: %w", err)
	}

	s.syncClaims(ctx, acct.UID)
	s.record(domain.AuditEvent{
		Action:         domain.AuditOwnerCreated,
		ActorUID:       caller.UID,
		TargetUID:      acct.UID,
		OrganizationID: orgID,
		Metadata:       map[string]any{"ownerDocId": owner.ID, "username": username},
	})

	return &ports.CreatedOwner{OwnerDocID: owner.ID, UID: acct.UID, Email: email, OrganizationID: orgID}, nil
}

// UpdateOwnerPassword sets a new password on an owner's account.
func (s *AccountService) UpdateOwnerPassword(ctx context.Context, caller domain.Caller, in ports.UpdateOwnerPasswordInput) error {
	if err := requireRole(caller, domain.RoleSuperAdmin); err != nil {
		return err
	}
	if err := required(field{"targetUid", in.TargetUID}, field{"newPassword", in.NewPassword}); err != nil {
		return err
	}

	if err := s.ensureOwner(ctx, in.TargetUID); err != nil {
		return err
	}

	pwd := in.NewPassword
	if err := s.deps.Identity.UpdateAccount(ctx, in.TargetUID, ports.AccountUpdate{Password: &pwd}); err != nil {
		return fmt.Errorf("update owner password: %w", err)
	}

	s.record(domain.AuditEvent{
		Action:    domain.AuditOwnerPasswordUpdated,
		ActorUID:  caller.UID,
		TargetUID: in.TargetUID,
	})
	return nil
}

// ToggleOwnerStatus changes an owner's status. Moving to inactive or
// suspended disables the account and revokes the sessions of the owner and of
// every coach they created.
func (s *AccountService) ToggleOwnerStatus(ctx context.Context, caller domain.Caller, in ports.ToggleOwnerStatusInput) error {
	if err := requireRole(caller, domain.RoleSuperAdmin); err != nil {
		return err
	}
	if err := required(field{"targetUid", in.TargetUID}, field{"ownerDocId", in.OwnerDocID}, field{"status", string(in.Status)}); err != nil {
		return err
	}
	if !in.Status.Valid() {
		return fmt.Errorf("%w: status must be one of active, inactive, suspended", domain.ErrInvalidArgument)
	}

	owner, err := s.ownerFor(ctx, in.OwnerDocID, in.TargetUID)
	if err != nil {
		return err
	}

	disabled := in.Status != domain.OwnerActive
	if err := s.deps.Identity.UpdateAccount(ctx, in.TargetUID, ports.AccountUpdate{Disabled: &disabled}); err != nil {
		return fmt.Errorf("toggle owner status: %w", err)
	}

	// Sessions are revoked before the owner record is written.
	var revokeErr error
	if in.Status.RevokesSessions() {
		revokeErr = s.revokeOwnerSessions(ctx, in.TargetUID)
	}

	if err := s.deps.Owners.UpdateStatus(ctx, owner.ID, in.Status); err != nil {
		err = fmt.Errorf("update record: %w", err)
		return fmt.Errorf("toggle owner status: %w", errors.Join(err, revokeErr))
	}

	s.record(domain.AuditEvent{
		Action:         domain.AuditOwnerStatusChanged,
		ActorUID:       caller.UID,
		TargetUID:      in.TargetUID,
		OrganizationID: owner.OrganizationID,
		Metadata:       map[string]any{"from": string(owner.Status), "to": string(in.Status)},
	})

	if revokeErr != nil {
		return fmt.Errorf("toggle owner status: %w", revokeErr)
	}
	return nil
}

// UpdateOwnerCredentials renames an owner's login handle and optionally sets a
// new password. The account email follows the username.
func (s *AccountService) UpdateOwnerCredentials(ctx context.Context, caller domain.Caller, in ports.UpdateOwnerCredentialsInput) (*ports.OwnerCredentialsResult, error) {
	if err := requireRole(caller, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	if err := required(field{"targetUid", in.TargetUID}, field{"ownerDocId", in.OwnerDocID}, field{"newUsername", in.NewUsername}); err != nil {
		return nil, err
	}

	owner, err := s.ownerFor(ctx, in.OwnerDocID, in.TargetUID)
	if err != nil {
		return nil, err
	}

	username := normalizeUsername(in.NewUsername)
	if username != owner.Credentials.Username {
		if err := s.ensureUsernameFree(ctx, username); err != nil {
			return nil, err
		}
	}

	email := usernameEmail(username, s.emailDomain)
	upd := ports.AccountUpdate{Email: &email}
	passwordUpdated := in.NewPassword != ""
	if passwordUpdated {
		pwd := in.NewPassword
		upd.Password = &pwd
	}
	if err := s.deps.Identity.UpdateAccount(ctx, in.TargetUID, upd); err != nil {
		return nil, fmt.Errorf("update owner credentials: %w", err)
	}

	err = s.deps.Batch.Run(ctx, func(ctx context.Context) error {
		if err := s.deps.Owners.UpdateUsername(ctx, owner.ID, username); err != nil {
			return fmt.Errorf("owner record: %w", err)
		}
		if err := s.deps.Profiles.UpdateCredentials(ctx, in.TargetUID, username, email); err != nil {
			return fmt.Errorf("owner profile: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Str("uid", in.TargetUID).Msg("account email changed but owner documents were not updated")
		return nil, fmt.Errorf("update owner credentials: %w", err)
	}

	s.record(domain.AuditEvent{
		Action:         domain.AuditOwnerCredentials,
		ActorUID:       caller.UID,
		TargetUID:      in.TargetUID,
		OrganizationID: owner.OrganizationID,
		Metadata:       map[string]any{"username": username, "passwordUpdated": passwordUpdated},
	})

	return &ports.OwnerCredentialsResult{Email: email, Username: username, PasswordUpdated: passwordUpdated}, nil
}

// ListStadiums returns the stadiums of the caller's organization.
func (s *AccountService) ListStadiums(ctx context.Context, caller domain.Caller) ([]*domain.Stadium, error) {
	if err := requireRole(caller, domain.RoleOwner); err != nil {
		return nil, err
	}
	orgID, err := s.callerOrganization(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.deps.Stadiums.ListByOrganization(ctx, orgID)
}

// ListOwners returns every provisioned owner record.
func (s *AccountService) ListOwners(ctx context.Context, caller domain.Caller) ([]*domain.StadiumOwner, error) {
	if err := requireRole(caller, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	return s.deps.Owners.List(ctx)
}

// BootstrapSuperAdmin creates a super-admin account. It is meant for the admin
// CLI and performs no caller check.
func (s *AccountService) BootstrapSuperAdmin(ctx context.Context, email, password, fullName string) (string, error) {
	if err := required(field{"email", email}, field{"password", password}, field{"fullName", fullName}); err != nil {
		return "", err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	acct, err := s.deps.Identity.CreateAccount(ctx, ports.NewAccount{Email: email, Password: password, DisplayName: fullName})
	if err != nil {
		return "", fmt.Errorf("bootstrap super-admin: %w", err)
	}

	now := time.Now().UTC()
	if err := s.deps.Profiles.Create(ctx, &domain.UserProfile{
		UID:       acct.UID,
		Role:      domain.RoleSuperAdmin,
		Email:     email,
		FullName:  strings.TrimSpace(fullName),
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		orphanedAccount(s.log, acct.UID, "bootstrap-super-admin", err)
		return "", fmt.Errorf("bootstrap super-admin: create profile: %w", err)
	}

	if _, err := s.deps.Reconciler.Reconcile(ctx, acct.UID); err != nil {
		return "", fmt.Errorf("bootstrap super-admin: %w", err)
	}
	s.record(domain.AuditEvent{Action: domain.AuditSuperAdminBootstrap, TargetUID: acct.UID})
	return acct.UID, nil
}

// revokeOwnerSessions revokes the sessions of ownerUID and of each of their
// coaches. Every revocation is attempted even when others fail.
func (s *AccountService) revokeOwnerSessions(ctx context.Context, ownerUID string) error {
	uids := []string{ownerUID}
	coachIDs, listErr := s.deps.Profiles.ListCoachIDs(ctx, ownerUID)
	if listErr != nil {
		listErr = fmt.Errorf("list coaches of %s: %w", ownerUID, listErr)
	}
	uids = append(uids, coachIDs...)

	var (
		mu   sync.Mutex
		errs []error
		g    errgroup.Group
	)
	g.SetLimit(maxConcurrentRevocations)
	for _, uid := range uids {
		g.Go(func() error {
			if err := s.deps.Sessions.RevokeSessions(ctx, uid); err != nil {
				metrics.SessionRevocationsTotal.WithLabelValues("failed").Inc()
				s.log.Error().Err(err).Str("uid", uid).Str("owner_uid", ownerUID).Msg("session revocation failed")
				mu.Lock()
				errs = append(errs, fmt.Errorf("revoke %s: %w", uid, err))
				mu.Unlock()
				return nil
			}
			metrics.SessionRevocationsTotal.WithLabelValues("revoked").Inc()
			return nil
		})
	}
	_ = g.Wait()

	s.log.Info().
		Str("owner_uid", ownerUID).
		Int("attempted", len(uids)).
		Int("failed", len(errs)).
		Msg("owner sessions revoked")

	return errors.Join(append(errs, listErr)...)
}

// callerOrganization reads the organization of the caller from their profile.
func (s *AccountService) callerOrganization(ctx context.Context, caller domain.Caller) (string, error) {
	profile, err := s.deps.Profiles.Get(ctx, caller.UID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return "", domain.ErrNoOrganization
		}
		return "", fmt.Errorf("read caller profile: %w", err)
	}
	if profile.OrganizationID == "" {
		return "", domain.ErrNoOrganization
	}
	return profile.OrganizationID, nil
}

// ownerFor loads an owner record and checks that it belongs to targetUID.
func (s *AccountService) ownerFor(ctx context.Context, ownerDocID, targetUID string) (*domain.StadiumOwner, error) {
	owner, err := s.deps.Owners.Get(ctx, ownerDocID)
	if err != nil {
		return nil, err
	}
	if owner.AuthUID != targetUID {
		return nil, domain.ErrOwnerMismatch
	}
	return owner, nil
}

// ensureOwner checks that uid's profile carries the owner role.
func (s *AccountService) ensureOwner(ctx context.Context, uid string) error {
	profile, err := s.deps.Profiles.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return err
		}
		return fmt.Errorf("read target profile: %w", err)
	}
	if profile.Role != domain.RoleOwner {
		return domain.ErrTargetNotOwner
	}
	return nil
}

func (s *AccountService) ensureUsernameFree(ctx context.Context, username string) error {
	taken, err := s.deps.Profiles.UsernameExists(ctx, username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if !taken {
		taken, err = s.deps.Owners.UsernameExists(ctx, username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
	}
	if taken {
		return domain.ErrUsernameTaken
	}
	return nil
}

func (s *AccountService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.deps.Identity.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.ErrEmailExists
	case errors.Is(err, domain.ErrAccountNotFound):
		return nil
	default:
		return fmt.Errorf("check email: %w", err)
	}
}

// syncClaims pushes the claims of a freshly written profile. A failure only
// delays them until the user's next login.
func (s *AccountService) syncClaims(ctx context.Context, uid string) {
	if _, err := s.deps.Reconciler.Reconcile(ctx, uid); err != nil {
		s.log.Warn().Err(err).Str("uid", uid).Msg("initial claims sync failed")
	}
}

func (s *AccountService) record(event domain.AuditEvent) {
	event.CreatedAt = time.Now().UTC()
	s.deps.Audit.Record(event)
}

func requireRole(caller domain.Caller, role domain.Role) error {
	if caller.UID == "" {
		return domain.ErrUnauthenticated
	}
	if caller.Role != role {
		return domain.RoleRequiredError(role)
	}
	return nil
}

func orphanedAccount(log zerolog.Logger, uid, operation string, err error) {
	metrics.OrphanedIdentitiesTotal.WithLabelValues(operation).Inc()
	log.Error().
		Err(err).
		Str("uid", uid).
		Str("operation", operation).
		Msg("identity account created but profile write failed; account is orphaned")
}
