package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
	"github.com/bhargav3929/myacademydask-sub000/internal/core/ports"
)

type stubBootstrapper struct {
	email, password, name string
	err                   error
}

func (s *stubBootstrapper) BootstrapSuperAdmin(_ context.Context, email, password, fullName string) (string, error) {
	s.email, s.password, s.name = email, password, fullName
	if s.err != nil {
		return "", s.err
	}
	return "uid-1", nil
}

type stubReconciler struct {
	res ports.ReconcileResult
	err error
}

func (s *stubReconciler) Reconcile(context.Context, string) (ports.ReconcileResult, error) {
	return s.res, s.err
}

func withPassword(t *testing.T, pwd string) {
	t.Helper()
	orig := readPasswordFunc
	readPasswordFunc = func(int) ([]byte, error) { return []byte(pwd), nil }
	t.Cleanup(func() { readPasswordFunc = orig })
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	cli := commandLine{out: &out}

	for _, args := range [][]string{{"admin"}, {"admin", "unknown"}} {
		out.Reset()
		err := cli.run(context.Background(), args)
		assert.ErrorIs(t, err, errHelp)
		assert.Contains(t, out.String(), "bootstrap-super-admin")
	}
}

func TestRun_BootstrapSuperAdmin(t *testing.T) {
	withPassword(t, "longenough1")
	var out bytes.Buffer
	accounts := &stubBootstrapper{}
	cli := commandLine{accounts: accounts, out: &out}

	err := cli.run(context.Background(), []string{"admin", "bootstrap-super-admin", "-email", "root@example.com", "-name", "Root"})
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", accounts.email)
	assert.Equal(t, "longenough1", accounts.password)
	assert.Equal(t, "Root", accounts.name)
	assert.Contains(t, out.String(), "super-admin created: uid-1")
}

func TestRun_BootstrapSuperAdmin_Rejects(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		withPassword(t, "longenough1")
		accounts := &stubBootstrapper{}
		cli := commandLine{accounts: accounts, out: &bytes.Buffer{}}
		err := cli.run(context.Background(), []string{"admin", "bootstrap-super-admin", "-email", "root@example.com"})
		assert.ErrorIs(t, err, errHelp)
		assert.Empty(t, accounts.email)
	})

	t.Run("empty password", func(t *testing.T) {
		withPassword(t, "")
		accounts := &stubBootstrapper{}
		cli := commandLine{accounts: accounts, out: &bytes.Buffer{}}
		err := cli.run(context.Background(), []string{"admin", "bootstrap-super-admin", "-email", "root@example.com", "-name", "Root"})
		assert.ErrorIs(t, err, errHelp)
		assert.Empty(t, accounts.email)
	})

	t.Run("service error", func(t *testing.T) {
		withPassword(t, "longenough1")
		cli := commandLine{accounts: &stubBootstrapper{err: domain.ErrEmailExists}, out: &bytes.Buffer{}}
		err := cli.run(context.Background(), []string{"admin", "bootstrap-super-admin", "-email", "root@example.com", "-name", "Root"})
		assert.True(t, errors.Is(err, domain.ErrAlreadyExists))
	})
}

func TestRun_SyncRole(t *testing.T) {
	var out bytes.Buffer
	cli := commandLine{
		reconciler: &stubReconciler{res: ports.ReconcileResult{Role: domain.RoleCoach, OrganizationID: "org1", Changed: true}},
		out:        &out,
	}

	require.NoError(t, cli.run(context.Background(), []string{"admin", "sync-role", "-uid", "c1"}))
	assert.Equal(t, "uid=c1 role=coach organization=org1 changed=true\n", out.String())

	err := cli.run(context.Background(), []string{"admin", "sync-role"})
	assert.ErrorIs(t, err, errHelp)
}
