package service

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
	"github.com/bhargav3929/myacademydask-sub000/internal/core/ports"
)

// TestPrivilegedOperations_RoleGate calls every privileged operation with
// well-formed input as each caller that is not allowed to run it and checks
// that nothing was written.
func TestPrivilegedOperations_RoleGate(t *testing.T) {
	type op struct {
		allowed domain.Role
		call    func(s *AccountService, c domain.Caller) error
	}
	ops := map[string]op{
		"grant-owner-role": {domain.RoleSuperAdmin, func(s *AccountService, c domain.Caller) error {
			return s.GrantOwnerRole(context.Background(), c, ports.GrantOwnerRoleInput{TargetUID: "u1", OrganizationID: "org2"})
		}},
		"create-stadium-and-coach": {domain.RoleOwner, func(s *AccountService, c domain.Caller) error {
			_, err := s.CreateStadiumAndCoach(context.Background(), c, ports.CreateStadiumAndCoachInput{
				StadiumName: "North", Location: "Town", CoachFullName: "Coach", CoachEmail: "coach@example.com",
				CoachPhone: "555", CoachUsername: "coachy", CoachPassword: "longenough1",
			})
			return err
		}},
		"create-coach-user": {domain.RoleOwner, func(s *AccountService, c domain.Caller) error {
			_, err := s.CreateCoachUser(context.Background(), c, ports.CreateCoachUserInput{
				Email: "c@example.com", Password: "longenough1", DisplayName: "Coach C",
			})
			return err
		}},
		"create-stadium-owner": {domain.RoleSuperAdmin, func(s *AccountService, c domain.Caller) error {
			_, err := s.CreateStadiumOwner(context.Background(), c, ports.CreateStadiumOwnerInput{
				FullName: "Owner", Username: "fresh", Password: "longenough1",
			})
			return err
		}},
		"update-owner-password": {domain.RoleSuperAdmin, func(s *AccountService, c domain.Caller) error {
			return s.UpdateOwnerPassword(context.Background(), c, ports.UpdateOwnerPasswordInput{TargetUID: "p1", NewPassword: "longenough1"})
		}},
		"toggle-owner-status": {domain.RoleSuperAdmin, func(s *AccountService, c domain.Caller) error {
			return s.ToggleOwnerStatus(context.Background(), c, ports.ToggleOwnerStatusInput{
				TargetUID: "p1", OwnerDocID: "d1", Status: domain.OwnerSuspended,
			})
		}},
		"update-owner-credentials": {domain.RoleSuperAdmin, func(s *AccountService, c domain.Caller) error {
			_, err := s.UpdateOwnerCredentials(context.Background(), c, ports.UpdateOwnerCredentialsInput{
				TargetUID: "p1", OwnerDocID: "d1", NewUsername: "renamed",
			})
			return err
		}},
		"list-stadiums": {domain.RoleOwner, func(s *AccountService, c domain.Caller) error {
			_, err := s.ListStadiums(context.Background(), c)
			return err
		}},
		"list-owners": {domain.RoleSuperAdmin, func(s *AccountService, c domain.Caller) error {
			_, err := s.ListOwners(context.Background(), c)
			return err
		}},
	}
	callers := map[string]domain.Caller{
		"owner":       {UID: "o1", Role: domain.RoleOwner},
		"coach":       {UID: "c1", Role: domain.RoleCoach},
		"super-admin": {UID: "admin", Role: domain.RoleSuperAdmin},
		"no role":     {UID: "u1"},
	}

	for opName, o := range ops {
		for callerName, caller := range callers {
			if caller.Role == o.allowed {
				continue
			}
			t.Run(opName+"/"+callerName, func(t *testing.T) {
				f := newFixture()
				f.seedOwner("o1", "org1")
				f.seedCoach("c1", "o1", "org1")
				f.seedSuperAdmin("admin")
				f.identity.add("u1", "u1@example.com", "pw")
				f.seedProvisionedOwner("p1", "d1", "arena", "org3")
				before := f.state()

				err := o.call(f.accounts, caller)
				require.ErrorIs(t, err, domain.ErrPermissionDenied)
				assert.Equal(t, before, f.state(), "no store may change")
				assert.Equal(t, 0, f.batch.runs)
			})
		}
	}
}

func TestPrivilegedOperations_Unauthenticated(t *testing.T) {
	f := newFixture()
	before := f.state()

	err := f.accounts.GrantOwnerRole(context.Background(), domain.Caller{}, ports.GrantOwnerRoleInput{})
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Equal(t, before, f.state())
}

func TestCreateCoachUser(t *testing.T) {
	f := newFixture()
	caller := f.seedOwner("o1", "org1")

	uid, err := f.accounts.CreateCoachUser(context.Background(), caller, ports.CreateCoachUserInput{
		Email:       "c@x.com",
		Password:    "longenough1",
		DisplayName: "Coach C",
	})
	require.NoError(t, err)

	profile := f.profiles.profiles[uid]
	require.NotNil(t, profile)
	assert.Equal(t, domain.RoleCoach, profile.Role)
	assert.Equal(t, "o1", profile.OwnerID)
	assert.Equal(t, "org1", profile.OrganizationID)
	assert.Equal(t, "Coach C", profile.FullName)

	assert.Equal(t, domain.Claims{Role: domain.RoleCoach, OrganizationID: "org1", OwnerID: "o1"}, f.claims.claims[uid])

	require.Len(t, f.audit.events, 1)
	assert.Equal(t, domain.AuditCoachCreated, f.audit.events[0].Action)
	assert.Equal(t, "o1", f.audit.events[0].ActorUID)
}

func TestCreateCoachUser_Conflicts(t *testing.T) {
	cases := []struct {
		name string
		in   ports.CreateCoachUserInput
		want error
	}{
		{
			name: "email in use",
			in:   ports.CreateCoachUserInput{Email: "O1@example.com", Password: "longenough1", DisplayName: "C"},
			want: domain.ErrEmailExists,
		},
		{
			name: "username in use",
			in:   ports.CreateCoachUserInput{Email: "c@x.com", Password: "longenough1", DisplayName: "C", CoachUsername: "ARENA"},
			want: domain.ErrUsernameTaken,
		},
		{
			name: "missing display name",
			in:   ports.CreateCoachUserInput{Email: "c@x.com", Password: "longenough1"},
			want: domain.ErrInvalidArgument,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			caller := f.seedOwner("o1", "org1")
			f.seedProvisionedOwner("p1", "d1", "arena", "org3")
			before := f.state()

			_, err := f.accounts.CreateCoachUser(context.Background(), caller, tc.in)
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, before, f.state())
		})
	}
}

func TestCreateCoachUser_NoOrganization(t *testing.T) {
	f := newFixture()
	caller := f.seedOwner("o1", "")
	before := f.state()

	_, err := f.accounts.CreateCoachUser(context.Background(), caller, ports.CreateCoachUserInput{
		Email: "c@x.com", Password: "longenough1", DisplayName: "C",
	})
	require.ErrorIs(t, err, domain.ErrNoOrganization)
	assert.ErrorIs(t, err, domain.ErrFailedPrecondition)
	assert.Equal(t, before, f.state())
}

func TestGrantOwnerRole_FromCoach(t *testing.T) {
	f := newFixture()
	admin := f.seedSuperAdmin("admin")
	f.seedCoach("c1", "o1", "org1")

	err := f.accounts.GrantOwnerRole(context.Background(), admin, ports.GrantOwnerRoleInput{TargetUID: "c1", OrganizationID: "org7"})
	require.NoError(t, err)

	profile := f.profiles.profiles["c1"]
	assert.Equal(t, domain.RoleOwner, profile.Role)
	assert.Equal(t, "org7", profile.OrganizationID)
	assert.Empty(t, profile.OwnerID)
	assert.Equal(t, domain.Claims{Role: domain.RoleOwner, OrganizationID: "org7"}, f.claims.claims["c1"])
	require.Len(t, f.audit.events, 1)
	assert.Equal(t, domain.AuditOwnerRoleGranted, f.audit.events[0].Action)
}

func TestGrantOwnerRole_UnknownAccount(t *testing.T) {
	f := newFixture()
	admin := f.seedSuperAdmin("admin")
	before := f.state()

	err := f.accounts.GrantOwnerRole(context.Background(), admin, ports.GrantOwnerRoleInput{TargetUID: "ghost", OrganizationID: "org7"})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, before, f.state())
}

func validStadiumInput() ports.CreateStadiumAndCoachInput {
	return ports.CreateStadiumAndCoachInput{
		StadiumName:   "Main Arena",
		Location:      "Downtown",
		CoachFullName: "Coach K",
		CoachEmail:    "k@example.com",
		CoachPhone:    "555-0101",
		CoachUsername: "coachk",
		CoachPassword: "longenough1",
	}
}

func TestCreateStadiumAndCoach(t *testing.T) {
	f := newFixture()
	caller := f.seedOwner("o1", "org1")

	out, err := f.accounts.CreateStadiumAndCoach(context.Background(), caller, validStadiumInput())
	require.NoError(t, err)

	stadium := f.stadiums.stadiums[out.StadiumID]
	require.NotNil(t, stadium)
	assert.Equal(t, "org1", stadium.OrganizationID)
	assert.Equal(t, "o1", stadium.OwnerID)
	assert.Equal(t, out.CoachUID, stadium.CoachID)
	assert.Equal(t, "coachk", stadium.CoachDetails.Username)

	profile := f.profiles.profiles[out.CoachUID]
	require.NotNil(t, profile)
	assert.Equal(t, domain.RoleCoach, profile.Role)
	assert.Equal(t, "o1", profile.OwnerID)
	assert.Equal(t, 1, f.batch.runs)

	stadiums, err := f.accounts.ListStadiums(context.Background(), caller)
	require.NoError(t, err)
	assert.Len(t, stadiums, 1)
}

func TestCreateStadiumAndCoach_DuplicateName(t *testing.T) {
	f := newFixture()
	caller := f.seedOwner("o1", "org1")
	f.stadiums.stadiums["s1"] = &domain.Stadium{ID: "s1", Name: "Main Arena", OrganizationID: "org1"}
	before := f.state()

	in := validStadiumInput()
	in.StadiumName = "  main ARENA "
	_, err := f.accounts.CreateStadiumAndCoach(context.Background(), caller, in)
	require.ErrorIs(t, err, domain.ErrStadiumExists)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Equal(t, before, f.state())
}

func TestCreateStadiumAndCoach_SameNameOtherOrganization(t *testing.T) {
	f := newFixture()
	caller := f.seedOwner("o1", "org1")
	f.stadiums.stadiums["s1"] = &domain.Stadium{ID: "s1", Name: "Main Arena", OrganizationID: "org2"}

	_, err := f.accounts.CreateStadiumAndCoach(context.Background(), caller, validStadiumInput())
	require.NoError(t, err)
	assert.Len(t, f.stadiums.stadiums, 2)
}

func TestCreateStadiumAndCoach_UsernameRequired(t *testing.T) {
	f := newFixture()
	caller := f.seedOwner("o1", "org1")

	in := validStadiumInput()
	in.CoachUsername = " "
	_, err := f.accounts.CreateStadiumAndCoach(context.Background(), caller, in)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "coachUsername")
}

func TestCreateStadiumAndCoach_BatchIsAllOrNothing(t *testing.T) {
	f := newFixture()
	caller := f.seedOwner("o1", "org1")
	f.stadiums.createErr = errStoreDown
	profilesBefore := len(f.profiles.profiles)
	accountsBefore := len(f.identity.accounts)

	_, err := f.accounts.CreateStadiumAndCoach(context.Background(), caller, validStadiumInput())
	require.ErrorIs(t, err, errStoreDown)

	assert.Len(t, f.profiles.profiles, profilesBefore, "coach profile must be rolled back")
	assert.Empty(t, f.stadiums.stadiums)
	// The identity account is outside the batch and stays behind.
	assert.Len(t, f.identity.accounts, accountsBefore+1)
	assert.Empty(t, f.audit.events)
}

func TestCreateStadiumOwner(t *testing.T) {
	f := newFixture()
	admin := f.seedSuperAdmin("admin")

	out, err := f.accounts.CreateStadiumOwner(context.Background(), admin, ports.CreateStadiumOwnerInput{
		FullName: "Olivia Owner",
		Username: "Olivia",
		Password: "longenough1",
	})
	require.NoError(t, err)

	assert.Equal(t, "olivia@"+testEmailDomain, out.Email)
	assert.NotEmpty(t, out.OrganizationID)

	owner := f.owners.owners[out.OwnerDocID]
	require.NotNil(t, owner)
	assert.Equal(t, out.UID, owner.AuthUID)
	assert.Equal(t, domain.OwnerActive, owner.Status)
	assert.Equal(t, "olivia", owner.Credentials.Username)

	profile := f.profiles.profiles[out.UID]
	require.NotNil(t, profile)
	assert.Equal(t, domain.RoleOwner, profile.Role)
	assert.Equal(t, out.OrganizationID, profile.OrganizationID)
	assert.Equal(t, domain.Claims{Role: domain.RoleOwner, OrganizationID: out.OrganizationID}, f.claims.claims[out.UID])

	tok, err := f.auth.Login(context.Background(), "olivia", "longenough1")
	require.NoError(t, err)
	assert.Equal(t, out.UID, tok.Session.UID)
}

func TestCreateStadiumOwner_UsernameHeldByCoach(t *testing.T) {
	f := newFixture()
	admin := f.seedSuperAdmin("admin")
	f.seedCoach("c1", "o1", "org1")
	f.profiles.profiles["c1"].Username = "olivia"
	before := f.state()

	_, err := f.accounts.CreateStadiumOwner(context.Background(), admin, ports.CreateStadiumOwnerInput{
		FullName: "Olivia Owner", Username: "olivia", Password: "longenough1",
	})
	require.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.Equal(t, before, f.state())
}

func TestUpdateOwnerPassword(t *testing.T) {
	f := newFixture()
	admin := f.seedSuperAdmin("admin")
	f.seedProvisionedOwner("p1", "d1", "arena", "org1")

	err := f.accounts.UpdateOwnerPassword(context.Background(), admin, ports.UpdateOwnerPasswordInput{TargetUID: "p1", NewPassword: "brandnew123"})
	require.NoError(t, err)
	assert.Equal(t, "brandnew123", f.identity.passwords["p1"])

	err = f.accounts.UpdateOwnerPassword(context.Background(), admin, ports.UpdateOwnerPasswordInput{TargetUID: "ghost", NewPassword: "brandnew123"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateOwnerPassword_TargetMustBeOwner(t *testing.T) {
	cases := map[string]struct {
		target string
		want   error
	}{
		"super-admin": {"admin2", domain.ErrTargetNotOwner},
		"coach":       {"c1", domain.ErrTargetNotOwner},
		"no profile":  {"u1", domain.ErrProfileNotFound},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			admin := f.seedSuperAdmin("admin")
			f.seedSuperAdmin("admin2")
			f.seedCoach("c1", "o1", "org1")
			f.identity.add("u1", "u1@example.com", "pw")
			before := f.state()
			password := f.identity.passwords[tc.target]

			err := f.accounts.UpdateOwnerPassword(context.Background(), admin, ports.UpdateOwnerPasswordInput{
				TargetUID: tc.target, NewPassword: "brandnew123",
			})
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, password, f.identity.passwords[tc.target])
			assert.Equal(t, before, f.state())
		})
	}
}

// seedOwnerWithCoaches stores provisioned owner p1 with n coaches and one
// coach belonging to somebody else.
func seedOwnerWithCoaches(f *fixture, n int) []string {
	f.seedProvisionedOwner("p1", "d1", "arena", "org1")
	uids := []string{"p1"}
	for i := range n {
		uid := "coach-" + string(rune('a'+i))
		f.seedCoach(uid, "p1", "org1")
		uids = append(uids, uid)
	}
	f.seedCoach("stranger", "someone-else", "org2")
	return uids
}

func TestToggleOwnerStatus_RevokesOwnerAndCoaches(t *testing.T) {
	f := newFixture()
	admin := f.seedSuperAdmin("admin")
	want := seedOwnerWithCoaches(f, 3)

	err := f.accounts.ToggleOwnerStatus(context.Background(), admin, ports.ToggleOwnerStatusInput{
		TargetUID: "p1", OwnerDocID: "d1", Status: domain.OwnerSuspended,
	})
	require.NoError(t, err)

	got := slices.Clone(f.sessions.attempts)
	slices.Sort(got)
	slices.Sort(want)
	assert.Equal(t, want, got)
	assert.NotContains(t, f.sessions.revoked, "stranger")

	assert.True(t, f.identity.accounts["p1"].Disabled)
	assert.Equal(t, domain.OwnerSuspended, f.owners.owners["d1"].Status)
	require.Len(t, f.audit.events, 1)
	assert.Equal(t, "suspended", f.audit.events[0].Metadata["to"])
}

func TestToggleOwnerStatus_PartialRevocationFailure(t *testing.T) {
	f := newFixture()
	admin := f.seedSuperAdmin("admin")
	seedOwnerWithCoaches(f, 3)
	f.sessions.fail["coach-b"] = true

	err := f.accounts.ToggleOwnerStatus(context.Background(), admin, ports.ToggleOwnerStatusInput{
		TargetUID: "p1", OwnerDocID: "d1", Status: domain.OwnerInactive,
	})
	require.ErrorIs(t, err, errStoreDown)
	assert.Contains(t, err.Error(), "coach-b")

	assert.Len(t, f.sessions.attempts, 4, "every revocation is attempted")
	for _, uid := range []string{"p1", "coach-a", "coach-c"} {
		assert.Contains(t, f.sessions.revoked, uid)
	}
	assert.NotContains(t, f.sessions.revoked, "coach-b")
	assert.Equal(t, domain.OwnerInactive, f.owners.owners["d1"].Status)
}

func TestToggleOwnerStatus_RecordFailureStillRevokes(t *testing.T) {
	f := newFixture()
	admin := f.seedSuperAdmin("admin")
	want := seedOwnerWithCoaches(f, 2)
	f.owners.statusErr = errStoreDown

	err := f.accounts.ToggleOwnerStatus(context.Background(), admin, ports.ToggleOwnerStatusInput{
		TargetUID: "p1", OwnerDocID: "d1", Status: domain.OwnerSuspended,
	})
	require.ErrorIs(t, err, errStoreDown)

	got := slices.Clone(f.sessions.attempts)
	slices.Sort(got)
	slices.Sort(want)
	assert.Equal(t, want, got, "owner and coaches are revoked before the record write")
	assert.True(t, f.identity.accounts["p1"].Disabled)
	assert.Equal(t, domain.OwnerActive, f.owners.owners["d1"].Status)
	assert.Empty(t, f.audit.events)
}

func TestToggleOwnerStatus_RecordAndRevocationFailuresJoined(t *testing.T) {
	f := newFixture()
	admin := f.seedSuperAdmin("admin")
	seedOwnerWithCoaches(f, 1)
	recordErr := errors.New("record write failed")
	f.owners.statusErr = recordErr
	f.sessions.fail["coach-a"] = true

	err := f.accounts.ToggleOwnerStatus(context.Background(), admin, ports.ToggleOwnerStatusInput{
		TargetUID: "p1", OwnerDocID: "d1", Status: domain.OwnerInactive,
	})
	require.ErrorIs(t, err, recordErr)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Contains(t, err.Error(), "coach-a")
	assert.Len(t, f.sessions.attempts, 2)
}

func TestToggleOwnerStatus_ReactivateDoesNotRevoke(t *testing.T) {
	f := newFixture()
	admin := f.seedSuperAdmin("admin")
	seedOwnerWithCoaches(f, 2)
	f.identity.accounts["p1"].Disabled = true
	f.owners.owners["d1"].Status = domain.OwnerSuspended

	err := f.accounts.ToggleOwnerStatus(context.Background(), admin, ports.ToggleOwnerStatusInput{
		TargetUID: "p1", OwnerDocID: "d1", Status: domain.OwnerActive,
	})
	require.NoError(t, err)
	assert.Empty(t, f.sessions.attempts)
	assert.False(t, f.identity.accounts["p1"].Disabled)
	assert.Equal(t, domain.OwnerActive, f.owners.owners["d1"].Status)
}

func TestToggleOwnerStatus_InvalidInput(t *testing.T) {
	cases := []struct {
		name string
		in   ports.ToggleOwnerStatusInput
		want error
	}{
		{"unknown status", ports.ToggleOwnerStatusInput{TargetUID: "p1", OwnerDocID: "d1", Status: "banned"}, domain.ErrInvalidArgument},
		{"owner mismatch", ports.ToggleOwnerStatusInput{TargetUID: "c1", OwnerDocID: "d1", Status: domain.OwnerSuspended}, domain.ErrOwnerMismatch},
		{"unknown record", ports.ToggleOwnerStatusInput{TargetUID: "p1", OwnerDocID: "nope", Status: domain.OwnerSuspended}, domain.ErrOwnerNotFound},
		{"missing doc id", ports.ToggleOwnerStatusInput{TargetUID: "p1", Status: domain.OwnerSuspended}, domain.ErrInvalidArgument},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			admin := f.seedSuperAdmin("admin")
			f.seedProvisionedOwner("p1", "d1", "arena", "org1")
			f.seedCoach("c1", "p1", "org1")
			before := f.state()

			err := f.accounts.ToggleOwnerStatus(context.Background(), admin, tc.in)
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, before, f.state())
			assert.False(t, f.identity.accounts["p1"].Disabled)
		})
	}
}

func TestUpdateOwnerCredentials_Rename(t *testing.T) {
	f := newFixture()
	admin := f.seedSuperAdmin("admin")
	f.seedProvisionedOwner("p1", "d1", "arena", "org1")

	out, err := f.accounts.UpdateOwnerCredentials(context.Background(), admin, ports.UpdateOwnerCredentialsInput{
		TargetUID: "p1", OwnerDocID: "d1", NewUsername: "Stadium-One", NewPassword: "brandnew123",
	})
	require.NoError(t, err)

	wantEmail := "stadium-one@" + testEmailDomain
	assert.Equal(t, &ports.OwnerCredentialsResult{Email: wantEmail, Username: "stadium-one", PasswordUpdated: true}, out)
	assert.Equal(t, wantEmail, f.identity.accounts["p1"].Email)
	assert.Equal(t, "brandnew123", f.identity.passwords["p1"])
	assert.Equal(t, "stadium-one", f.owners.owners["d1"].Credentials.Username)
	assert.Equal(t, "stadium-one", f.profiles.profiles["p1"].Username)
	assert.Equal(t, wantEmail, f.profiles.profiles["p1"].Email)

	_, err = f.auth.Login(context.Background(), "stadium-one", "brandnew123")
	require.NoError(t, err)
}

func TestUpdateOwnerCredentials_KeepUsername(t *testing.T) {
	f := newFixture()
	admin := f.seedSuperAdmin("admin")
	f.seedProvisionedOwner("p1", "d1", "arena", "org1")

	out, err := f.accounts.UpdateOwnerCredentials(context.Background(), admin, ports.UpdateOwnerCredentialsInput{
		TargetUID: "p1", OwnerDocID: "d1", NewUsername: "arena",
	})
	require.NoError(t, err)
	assert.False(t, out.PasswordUpdated)
	assert.Equal(t, "owner-pass", f.identity.passwords["p1"])
}

func TestUpdateOwnerCredentials_UsernameConflict(t *testing.T) {
	f := newFixture()
	admin := f.seedSuperAdmin("admin")
	f.seedProvisionedOwner("p1", "d1", "arena", "org1")
	f.seedProvisionedOwner("p2", "d2", "taken", "org2")
	before := f.state()

	_, err := f.accounts.UpdateOwnerCredentials(context.Background(), admin, ports.UpdateOwnerCredentialsInput{
		TargetUID: "p1", OwnerDocID: "d1", NewUsername: "Taken",
	})
	require.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.Equal(t, before, f.state())
	assert.Equal(t, "arena", f.owners.owners["d1"].Credentials.Username)
}

func TestUpdateOwnerCredentials_DocumentsRolledBack(t *testing.T) {
	f := newFixture()
	admin := f.seedSuperAdmin("admin")
	f.seedProvisionedOwner("p1", "d1", "arena", "org1")
	f.owners.updateErr = errStoreDown

	_, err := f.accounts.UpdateOwnerCredentials(context.Background(), admin, ports.UpdateOwnerCredentialsInput{
		TargetUID: "p1", OwnerDocID: "d1", NewUsername: "renamed",
	})
	require.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, "arena", f.owners.owners["d1"].Credentials.Username)
	assert.Equal(t, "arena", f.profiles.profiles["p1"].Username)
	assert.Empty(t, f.audit.events)
}

func TestListOwners(t *testing.T) {
	f := newFixture()
	admin := f.seedSuperAdmin("admin")
	f.seedProvisionedOwner("p1", "d1", "arena", "org1")
	f.seedProvisionedOwner("p2", "d2", "field", "org2")

	owners, err := f.accounts.ListOwners(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, owners, 2)
}

func TestBootstrapSuperAdmin(t *testing.T) {
	f := newFixture()

	uid, err := f.accounts.BootstrapSuperAdmin(context.Background(), "Root@Example.com", "longenough1", "Root")
	require.NoError(t, err)

	assert.Equal(t, domain.RoleSuperAdmin, f.profiles.profiles[uid].Role)
	assert.Equal(t, domain.Claims{Role: domain.RoleSuperAdmin}, f.claims.claims[uid])
	require.Len(t, f.audit.events, 1)
	assert.Equal(t, domain.AuditSuperAdminBootstrap, f.audit.events[0].Action)

	_, err = f.accounts.BootstrapSuperAdmin(context.Background(), "root@example.com", "longenough1", "Root")
	assert.True(t, errors.Is(err, domain.ErrEmailExists))
}
