package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "github.com/softnova/crm-console/internal/errors"
	"github.com/softnova/crm-console/internal/i18n"
	"github.com/softnova/crm-console/session"
	"github.com/softnova/crm-console/users"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const maxPasswordLength = 1024

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var (
		email         string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the CRM and keep the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readSecret(cmd, "Password: ", passwordStdin)
			if err != nil {
				return err
			}
			return opts.withApp(cmd, func(a *app) error {
				user, err := a.store.Login(cmd.Context(), session.Credentials{Email: email, Password: password})
				if err != nil {
					return a.loginError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", user.Nombre, user.Email, roleLabel(a, user.Rol))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// loginError reports the server or validation message, else the login fallback
func (a *app) loginError(err error) error {
	if apperrors.Is(err, apperrors.ErrAuthentication) {
		return a.userError(err, i18n.MsgInvalidCredentials)
	}
	return a.userError(err, i18n.MsgLoginFailed)
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(a *app) error {
				if err := a.store.Logout(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), a.printer.Sprintf(i18n.MsgLoggedOut))
				return nil
			})
		},
	}
}

func newWhoamiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in operator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.protected(cmd, func(a *app, user *users.User) error {
				w := newTable(cmd.OutOrStdout())
				fmt.Fprintf(w, "ID\t%d\n", user.ID)
				fmt.Fprintf(w, "%s\t%s\n", header(a, i18n.LabelName), user.Nombre)
				fmt.Fprintf(w, "%s\t%s\n", header(a, i18n.LabelEmail), user.Email)
				fmt.Fprintf(w, "%s\t%s\n", header(a, i18n.LabelRole), roleLabel(a, user.Rol))
				return w.Flush()
			})
		},
	}
}

// readSecret reads a password from stdin when fromStdin is set, otherwise prompts on
// the terminal without echo
func readSecret(cmd *cobra.Command, prompt string, fromStdin bool) (string, error) {
	in := cmd.InOrStdin()
	if fromStdin {
		data, err := io.ReadAll(io.LimitReader(in, maxPasswordLength))
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}

	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "", errors.New("stdin is not a terminal, use --password-stdin")
	}
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	secret, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(secret), nil
}

func roleLabel(a *app, rol string) string {
	switch users.RoleType(rol) {
	case users.RoleAdmin:
		return a.printer.Sprintf(i18n.LabelRoleAdmin)
	case users.RoleUser:
		return a.printer.Sprintf(i18n.LabelRoleUser)
	}
	return rol
}
