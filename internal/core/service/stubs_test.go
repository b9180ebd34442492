package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
	"github.com/bhargav3929/myacademydask-sub000/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

var errStoreDown = errors.New("store unavailable")

// snapshotter is implemented by the stores that take part in a batch.
type snapshotter interface {
	snapshot() func()
}

type stubIdentity struct {
	accounts  map[string]*domain.Account
	passwords map[string]string
	seq       int
	writes    int
	createErr error
	updateErr error
}

func newStubIdentity() *stubIdentity {
	return &stubIdentity{accounts: map[string]*domain.Account{}, passwords: map[string]string{}}
}

func (s *stubIdentity) add(uid, email, password string) {
	s.accounts[uid] = &domain.Account{UID: uid, Email: email}
	s.passwords[uid] = password
}

func (s *stubIdentity) CreateAccount(_ context.Context, in ports.NewAccount) (*domain.Account, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	for _, a := range s.accounts {
		if a.Email == in.Email {
			return nil, domain.ErrEmailExists
		}
	}
	s.seq++
	s.writes++
	uid := fmt.Sprintf("uid-%d", s.seq)
	s.add(uid, in.Email, in.Password)
	s.accounts[uid].DisplayName = in.DisplayName
	acct := *s.accounts[uid]
	return &acct, nil
}

func (s *stubIdentity) GetAccount(_ context.Context, uid string) (*domain.Account, error) {
	a, ok := s.accounts[uid]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	acct := *a
	return &acct, nil
}

func (s *stubIdentity) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range s.accounts {
		if a.Email == email {
			acct := *a
			return &acct, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (s *stubIdentity) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	a, err := s.FindByEmail(ctx, email)
	if err != nil || s.passwords[a.UID] != password {
		return nil, domain.ErrInvalidCredentials
	}
	return a, nil
}

func (s *stubIdentity) UpdateAccount(_ context.Context, uid string, upd ports.AccountUpdate) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	a, ok := s.accounts[uid]
	if !ok {
		return domain.ErrAccountNotFound
	}
	s.writes++
	if upd.Email != nil {
		a.Email = *upd.Email
	}
	if upd.Password != nil {
		s.passwords[uid] = *upd.Password
	}
	if upd.Disabled != nil {
		a.Disabled = *upd.Disabled
	}
	return nil
}

type stubClaims struct {
	claims map[string]domain.Claims
	sets   int
	getErr error
}

func newStubClaims() *stubClaims {
	return &stubClaims{claims: map[string]domain.Claims{}}
}

func (s *stubClaims) Get(_ context.Context, uid string) (domain.Claims, error) {
	if s.getErr != nil {
		return domain.Claims{}, s.getErr
	}
	return s.claims[uid], nil
}

func (s *stubClaims) Set(_ context.Context, uid string, c domain.Claims) error {
	s.sets++
	if c.IsEmpty() {
		delete(s.claims, uid)
		return nil
	}
	s.claims[uid] = c
	return nil
}

type stubSessions struct {
	mu       sync.Mutex
	revoked  map[string]time.Time
	attempts []string
	fail     map[string]bool
}

func newStubSessions() *stubSessions {
	return &stubSessions{revoked: map[string]time.Time{}, fail: map[string]bool{}}
}

func (s *stubSessions) RevokeSessions(_ context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, uid)
	if s.fail[uid] {
		return errStoreDown
	}
	s.revoked[uid] = time.Now().UTC().Truncate(time.Second)
	return nil
}

func (s *stubSessions) RevokedSince(_ context.Context, uid string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revoked[uid], nil
}

type stubProfiles struct {
	profiles  map[string]*domain.UserProfile
	writes    int
	createErr error
}

func newStubProfiles() *stubProfiles {
	return &stubProfiles{profiles: map[string]*domain.UserProfile{}}
}

func (s *stubProfiles) snapshot() func() {
	saved := make(map[string]*domain.UserProfile, len(s.profiles))
	for k, v := range s.profiles {
		p := *v
		saved[k] = &p
	}
	return func() { s.profiles = saved }
}

func (s *stubProfiles) Get(_ context.Context, uid string) (*domain.UserProfile, error) {
	p, ok := s.profiles[uid]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubProfiles) Create(_ context.Context, p *domain.UserProfile) error {
	if s.createErr != nil {
		return s.createErr
	}
	if _, ok := s.profiles[p.UID]; ok {
		return domain.ErrAlreadyExists
	}
	s.writes++
	cp := *p
	s.profiles[p.UID] = &cp
	return nil
}

func (s *stubProfiles) UpsertRole(_ context.Context, uid string, role domain.Role, organizationID, email string) error {
	s.writes++
	p, ok := s.profiles[uid]
	if !ok {
		p = &domain.UserProfile{UID: uid, Email: email}
		s.profiles[uid] = p
	}
	p.Role = role
	p.OrganizationID = organizationID
	p.OwnerID = ""
	return nil
}

func (s *stubProfiles) UpdateCredentials(_ context.Context, uid, username, email string) error {
	p, ok := s.profiles[uid]
	if !ok {
		return domain.ErrProfileNotFound
	}
	s.writes++
	p.Username = username
	p.Email = email
	return nil
}

func (s *stubProfiles) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, p := range s.profiles {
		if p.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubProfiles) ListCoachIDs(_ context.Context, ownerUID string) ([]string, error) {
	var ids []string
	for _, p := range s.profiles {
		if p.Role == domain.RoleCoach && p.OwnerID == ownerUID {
			ids = append(ids, p.UID)
		}
	}
	return ids, nil
}

type stubStadiums struct {
	stadiums  map[string]*domain.Stadium
	createErr error
}

func newStubStadiums() *stubStadiums {
	return &stubStadiums{stadiums: map[string]*domain.Stadium{}}
}

func (s *stubStadiums) snapshot() func() {
	saved := maps.Clone(s.stadiums)
	return func() { s.stadiums = saved }
}

func (s *stubStadiums) ExistsByName(_ context.Context, organizationID, name string) (bool, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, st := range s.stadiums {
		if st.OrganizationID == organizationID && strings.ToLower(st.Name) == key {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubStadiums) Create(_ context.Context, st *domain.Stadium) error {
	if s.createErr != nil {
		return s.createErr
	}
	cp := *st
	s.stadiums[st.ID] = &cp
	return nil
}

func (s *stubStadiums) ListByOrganization(_ context.Context, organizationID string) ([]*domain.Stadium, error) {
	var out []*domain.Stadium
	for _, st := range s.stadiums {
		if st.OrganizationID == organizationID {
			out = append(out, st)
		}
	}
	return out, nil
}

type stubOwners struct {
	owners    map[string]*domain.StadiumOwner
	createErr error
	updateErr error
	statusErr error
}

func newStubOwners() *stubOwners {
	return &stubOwners{owners: map[string]*domain.StadiumOwner{}}
}

func (s *stubOwners) snapshot() func() {
	saved := make(map[string]*domain.StadiumOwner, len(s.owners))
	for k, v := range s.owners {
		o := *v
		saved[k] = &o
	}
	return func() { s.owners = saved }
}

func (s *stubOwners) Get(_ context.Context, id string) (*domain.StadiumOwner, error) {
	o, ok := s.owners[id]
	if !ok {
		return nil, domain.ErrOwnerNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *stubOwners) Create(_ context.Context, o *domain.StadiumOwner) error {
	if s.createErr != nil {
		return s.createErr
	}
	cp := *o
	s.owners[o.ID] = &cp
	return nil
}

func (s *stubOwners) UpdateStatus(_ context.Context, id string, status domain.OwnerStatus) error {
	if s.statusErr != nil {
		return s.statusErr
	}
	o, ok := s.owners[id]
	if !ok {
		return domain.ErrOwnerNotFound
	}
	o.Status = status
	return nil
}

func (s *stubOwners) UpdateUsername(_ context.Context, id, username string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	o, ok := s.owners[id]
	if !ok {
		return domain.ErrOwnerNotFound
	}
	o.Credentials.Username = username
	return nil
}

func (s *stubOwners) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, o := range s.owners {
		if o.Credentials.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubOwners) List(_ context.Context) ([]*domain.StadiumOwner, error) {
	var out []*domain.StadiumOwner
	for _, o := range s.owners {
		out = append(out, o)
	}
	return out, nil
}

// stubBatch restores every participating store when fn fails, like a
// transaction abort.
type stubBatch struct {
	stores []snapshotter
	runs   int
}

func (b *stubBatch) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	b.runs++
	restores := make([]func(), 0, len(b.stores))
	for _, s := range b.stores {
		restores = append(restores, s.snapshot())
	}
	if err := fn(ctx); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}

type stubAudit struct {
	events []domain.AuditEvent
}

func (a *stubAudit) Record(e domain.AuditEvent) {
	a.events = append(a.events, e)
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

const testEmailDomain = "owners.test"

type fixture struct {
	identity   *stubIdentity
	claims     *stubClaims
	sessions   *stubSessions
	profiles   *stubProfiles
	stadiums   *stubStadiums
	owners     *stubOwners
	batch      *stubBatch
	audit      *stubAudit
	reconciler *RoleReconciler
	accounts   *AccountService
	auth       *AuthService
}

func newFixture() *fixture {
	f := &fixture{
		identity: newStubIdentity(),
		claims:   newStubClaims(),
		sessions: newStubSessions(),
		profiles: newStubProfiles(),
		stadiums: newStubStadiums(),
		owners:   newStubOwners(),
		audit:    &stubAudit{},
	}
	f.batch = &stubBatch{stores: []snapshotter{f.profiles, f.stadiums, f.owners}}
	f.reconciler = NewRoleReconciler(f.claims, f.profiles, zerolog.Nop())
	f.accounts = NewAccountService(AccountDeps{
		Identity:   f.identity,
		Profiles:   f.profiles,
		Stadiums:   f.stadiums,
		Owners:     f.owners,
		Sessions:   f.sessions,
		Batch:      f.batch,
		Reconciler: f.reconciler,
		Audit:      f.audit,
	}, testEmailDomain, zerolog.Nop())
	f.auth = NewAuthService(f.identity, f.profiles, f.claims, f.sessions, f.reconciler, AuthConfig{
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
		EmailDomain: testEmailDomain,
	}, zerolog.Nop())
	return f
}

// seedOwner stores an owner account and profile in organization org.
func (f *fixture) seedOwner(uid, org string) domain.Caller {
	f.identity.add(uid, uid+"@example.com", "owner-pass")
	f.profiles.profiles[uid] = &domain.UserProfile{UID: uid, Role: domain.RoleOwner, OrganizationID: org}
	f.claims.claims[uid] = domain.Claims{Role: domain.RoleOwner, OrganizationID: org}
	return domain.Caller{UID: uid, Role: domain.RoleOwner}
}

func (f *fixture) seedSuperAdmin(uid string) domain.Caller {
	f.identity.add(uid, uid+"@example.com", "admin-pass")
	f.profiles.profiles[uid] = &domain.UserProfile{UID: uid, Role: domain.RoleSuperAdmin}
	f.claims.claims[uid] = domain.Claims{Role: domain.RoleSuperAdmin}
	return domain.Caller{UID: uid, Role: domain.RoleSuperAdmin}
}

func (f *fixture) seedCoach(uid, ownerUID, org string) {
	f.identity.add(uid, uid+"@example.com", "coach-pass")
	f.profiles.profiles[uid] = &domain.UserProfile{UID: uid, Role: domain.RoleCoach, OrganizationID: org, OwnerID: ownerUID}
}

// seedProvisionedOwner stores an owner created by the super-admin together
// with its stadium_owners record.
func (f *fixture) seedProvisionedOwner(uid, docID, username, org string) {
	f.identity.add(uid, username+"@"+testEmailDomain, "owner-pass")
	f.profiles.profiles[uid] = &domain.UserProfile{UID: uid, Role: domain.RoleOwner, OrganizationID: org, Username: username}
	f.owners.owners[docID] = &domain.StadiumOwner{
		ID:             docID,
		AuthUID:        uid,
		OrganizationID: org,
		Credentials:    domain.OwnerCredentials{Username: username},
		Status:         domain.OwnerActive,
	}
}

// state captures every store so tests can assert that nothing changed.
type state struct {
	accounts  int
	idWrites  int
	profiles  int
	prWrites  int
	claimSets int
	stadiums  int
	owners    int
	revoked   int
	audit     int
}

func (f *fixture) state() state {
	return state{
		accounts:  len(f.identity.accounts),
		idWrites:  f.identity.writes,
		profiles:  len(f.profiles.profiles),
		prWrites:  f.profiles.writes,
		claimSets: f.claims.sets,
		stadiums:  len(f.stadiums.stadiums),
		owners:    len(f.owners.owners),
		revoked:   len(f.sessions.attempts),
		audit:     len(f.audit.events),
	}
}
