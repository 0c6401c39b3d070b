package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/softnova/crm-console/internal/i18n"
	"github.com/softnova/crm-console/internal/utils"
	"github.com/softnova/crm-console/users"
	"github.com/spf13/cobra"
)

func newUsersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage operator accounts",
	}
	cmd.AddCommand(newUsersListCmd(opts))
	cmd.AddCommand(newUsersCreateCmd(opts))
	cmd.AddCommand(newUsersUpdateCmd(opts))
	cmd.AddCommand(newUsersDeleteCmd(opts))
	return cmd
}

func newUsersListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List operator accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.protected(cmd, func(a *app, _ *users.User) error {
				list, err := a.users.List(cmd.Context())
				if err != nil {
					return a.userError(err, i18n.MsgUsersLoadFailed)
				}
				if len(list) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), a.printer.Sprintf(i18n.LabelNoUsers))
					return nil
				}

				w := newTable(cmd.OutOrStdout())
				fmt.Fprintf(w, "ID\t%s\t%s\t%s\n", header(a, i18n.LabelName), header(a, i18n.LabelEmail), header(a, i18n.LabelRole))
				for _, u := range list {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Nombre, u.Email, roleLabel(a, u.Rol))
				}
				return w.Flush()
			})
		},
	}
}

func newUsersCreateCmd(opts *rootOptions) *cobra.Command {
	var (
		req           users.CreateRequest
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an operator account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readSecret(cmd, "Password: ", passwordStdin)
			if err != nil {
				return err
			}
			req.Password = password
			return opts.protected(cmd, func(a *app, _ *users.User) error {
				u, err := a.users.Create(cmd.Context(), req)
				if err != nil {
					return a.userError(err, i18n.MsgRequestFailed)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (ID %d)\n", a.printer.Sprintf(i18n.MsgUserCreated), u.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.Nombre, "name", "", "display name")
	cmd.Flags().StringVar(&req.Email, "email", "", "login email")
	cmd.Flags().StringVar(&req.Rol, "role", string(users.RoleUser), "usuario or administrador")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newUsersUpdateCmd(opts *rootOptions) *cobra.Command {
	var (
		nombre, email, rol string
		setPassword        bool
		passwordStdin      bool
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change an operator account; only the given flags are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			req := users.UpdateRequest{
				Nombre: utils.PtrIf(flags.Changed("name"), nombre),
				Email:  utils.PtrIf(flags.Changed("email"), email),
				Rol:    utils.PtrIf(flags.Changed("role"), rol),
			}
			if setPassword || passwordStdin {
				password, err := readSecret(cmd, "New password: ", passwordStdin)
				if err != nil {
					return err
				}
				req.Password = &password
			}

			return opts.protected(cmd, func(a *app, _ *users.User) error {
				if _, err := a.users.Update(cmd.Context(), id, req); err != nil {
					return a.userError(err, notFoundOr(err, i18n.MsgUserNotFound, i18n.MsgRequestFailed))
				}
				fmt.Fprintln(cmd.OutOrStdout(), a.printer.Sprintf(i18n.MsgUserUpdated))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&nombre, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&rol, "role", "", "usuario or administrador")
	cmd.Flags().BoolVar(&setPassword, "password", false, "prompt for a new password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the new password from stdin")
	return cmd
}

func newUsersDeleteCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an operator account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.protected(cmd, func(a *app, _ *users.User) error {
				if !yes && !confirm(cmd, a.printer.Sprintf(i18n.LabelConfirmDelete)) {
					return errors.New("aborted")
				}
				if err := a.users.Delete(cmd.Context(), id); err != nil {
					return a.userError(err, i18n.MsgUserDeleteFailed)
				}
				fmt.Fprintln(cmd.OutOrStdout(), a.printer.Sprintf(i18n.MsgUserDeleted))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// confirm asks a yes/no question on stdin; anything but y or yes is a no
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N] ", question)
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "s", "si", "sí":
		return true
	}
	return false
}
