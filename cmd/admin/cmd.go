package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/ports"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type superAdminBootstrapper interface {
	BootstrapSuperAdmin(ctx context.Context, email, password, fullName string) (string, error)
}

type commandLine struct {
	accounts   superAdminBootstrapper
	reconciler ports.RoleReconciler
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  bootstrap-super-admin -email EMAIL -name FULL_NAME - create a super-admin account")
	fmt.Fprintln(cli.out, "  sync-role -uid UID - recompute a user's claims from their profile")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "bootstrap-super-admin":
		fs := flag.NewFlagSet("bootstrap-super-admin", flag.ContinueOnError)
		fs.SetOutput(cli.out)
		email := fs.String("email", "", "Login email of the new super-admin. The password will be prompted next.")
		name := fs.String("name", "", "Full name of the new super-admin.")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		if *email == "" || *name == "" {
			fs.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			fs.Usage()
			return errHelp
		}
		return cli.bootstrapSuperAdmin(ctx, *email, string(pwd), *name)

	case "sync-role":
		fs := flag.NewFlagSet("sync-role", flag.ContinueOnError)
		fs.SetOutput(cli.out)
		uid := fs.String("uid", "", "Identity uid of the user.")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		if *uid == "" {
			fs.Usage()
			return errHelp
		}
		return cli.syncRole(ctx, *uid)

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) bootstrapSuperAdmin(ctx context.Context, email, password, name string) error {
	uid, err := cli.accounts.BootstrapSuperAdmin(ctx, email, password, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "super-admin created: %s\n", uid)
	return nil
}

func (cli *commandLine) syncRole(ctx context.Context, uid string) error {
	res, err := cli.reconciler.Reconcile(ctx, uid)
	if err != nil {
		return err
	}
	role := string(res.Role)
	if role == "" {
		role = "(none)"
	}
	fmt.Fprintf(cli.out, "uid=%s role=%s organization=%s changed=%t\n", uid, role, res.OrganizationID, res.Changed)
	return nil
}
