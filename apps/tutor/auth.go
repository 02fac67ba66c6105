package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/trezcool/mentorhub/core/session"
	"github.com/trezcool/mentorhub/core/user"
)

func (cli *commandLine) login(ctx context.Context, args []string) error {
	fs := cli.flagSet("login")
	email := fs.String("email", "", "Your email address. The password will be prompted next.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *email == "" {
		fs.Usage()
		return errHelp
	}
	pwd, err := cli.readPassword("Enter password:")
	if err != nil {
		return err
	}

	sess, landing, err := cli.app.Auth.Login(ctx, user.Credentials{Email: *email, Password: pwd})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Logged in as %s (%s). Landing page: %s\n", sess.User.Name, sess.User.Role, landing)
	return nil
}

func (cli *commandLine) register(ctx context.Context, args []string) error {
	fs := cli.flagSet("register")
	name := fs.String("name", "", "Your full name.")
	email := fs.String("email", "", "Your email address or 10-digit phone number.")
	role := fs.String("role", string(session.RoleStudent), "STUDENT or MENTOR.")
	class := fs.String("class", "", "Your class (A, B or C); students only.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *name == "" || *email == "" {
		fs.Usage()
		return errHelp
	}
	pwd, err := cli.readPassword("Enter password:")
	if err != nil {
		return err
	}
	confirm, err := cli.readPassword("Confirm password:")
	if err != nil {
		return err
	}

	return cli.app.Auth.Register(ctx, user.Registration{
		Name:            *name,
		Email:           *email,
		Role:            session.Role(strings.ToUpper(*role)),
		Password:        pwd,
		PasswordConfirm: confirm,
		ClassName:       strings.ToUpper(*class),
	})
}

func (cli *commandLine) logout(ctx context.Context, _ []string) error {
	home, err := cli.app.Auth.Logout(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Back to", home)
	return nil
}

func (cli *commandLine) whoami(ctx context.Context, _ []string) error {
	sess, err := cli.sessions.Require(ctx)
	if err != nil {
		return err
	}
	usr := sess.User
	fmt.Fprintf(cli.out, "%s <%s> %s #%d\n", usr.Name, usr.Email, usr.Role, usr.UserID)
	return nil
}
