package main

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/softnova/crm-console/internal/errors"
	"github.com/softnova/crm-console/internal/i18n"
	"github.com/softnova/crm-console/leads"
	"github.com/softnova/crm-console/users"
	"github.com/spf13/cobra"
)

func newLeadsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Browse leads and change their status",
	}
	cmd.AddCommand(newLeadsListCmd(opts))
	cmd.AddCommand(newLeadsShowCmd(opts))
	cmd.AddCommand(newLeadsSetStatusCmd(opts))
	cmd.AddCommand(newLeadsStatsCmd(opts))
	return cmd
}

type pageFlags struct {
	page  int
	limit int
}

func (f *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 1, "page to fetch")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "leads per page (default from config)")
}

// load fetches one page of leads into a fresh board
func (f *pageFlags) load(cmd *cobra.Command, a *app) (*leads.Board, error) {
	limit := f.limit
	if limit <= 0 {
		limit = a.cfg.GetLeadsPageSize()
	}
	board := leads.NewBoard()
	if err := a.workflow.Load(cmd.Context(), board, f.page, limit); err != nil {
		return nil, a.userError(err, i18n.MsgLeadsLoadFailed)
	}
	return board, nil
}

func newLeadsListCmd(opts *rootOptions) *cobra.Command {
	var (
		pages pageFlags
		query string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leads, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.protected(cmd, func(a *app, _ *users.User) error {
				board, err := pages.load(cmd, a)
				if err != nil {
					return err
				}
				list := board.Filter(query)
				if len(list) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), a.printer.Sprintf(i18n.LabelNoLeads))
					return nil
				}

				w := newTable(cmd.OutOrStdout())
				fmt.Fprintln(w, strings.Join([]string{"ID", header(a, i18n.LabelClient), header(a, i18n.LabelEmail),
					header(a, i18n.LabelService), header(a, i18n.LabelStatus), header(a, i18n.LabelDate)}, "\t"))
				for _, l := range list {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", l.ID, l.NombreCompleto, l.Correo,
						orDefault(l.Servicio, a.printer.Sprintf(i18n.LabelNoService)), l.Estado.Label(a.printer), l.FechaEnvio)
				}
				return w.Flush()
			})
		},
	}

	pages.register(cmd)
	cmd.Flags().StringVarP(&query, "query", "q", "", "only leads whose name, email, status or service contains this text")
	return cmd
}

func newLeadsShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.protected(cmd, func(a *app, _ *users.User) error {
				lead, err := a.workflow.Get(cmd.Context(), id)
				if err != nil {
					return a.userError(err, notFoundOr(err, i18n.MsgLeadNotFound, i18n.MsgRequestFailed))
				}

				p := a.printer
				w := newTable(cmd.OutOrStdout())
				fmt.Fprintf(w, "ID\t%d\n", lead.ID)
				fmt.Fprintf(w, "%s\t%s\n", header(a, i18n.LabelName), lead.NombreCompleto)
				fmt.Fprintf(w, "%s\t%s\n", header(a, i18n.LabelEmail), lead.Correo)
				fmt.Fprintf(w, "%s\t%s\n", header(a, i18n.LabelPhone), orDefault(lead.Telefono, p.Sprintf(i18n.LabelNoPhone)))
				fmt.Fprintf(w, "%s\t%s\n", header(a, i18n.LabelService), orDefault(lead.Servicio, p.Sprintf(i18n.LabelNoService)))
				fmt.Fprintf(w, "%s\t%s\n", header(a, i18n.LabelStatus), lead.Estado.Label(p))
				fmt.Fprintf(w, "%s\t%s\n", header(a, i18n.LabelDate), lead.FechaEnvio)
				fmt.Fprintf(w, "%s\t%s\n", header(a, i18n.LabelMessage), orDefault(lead.Mensaje, p.Sprintf(i18n.LabelNoMessage)))
				return w.Flush()
			})
		},
	}
}

func newLeadsSetStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status ID STATUS",
		Short: "Change a lead's status (nuevo, contactado or descartado)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.protected(cmd, func(a *app, _ *users.User) error {
				lead, err := a.workflow.Get(cmd.Context(), id)
				if err != nil {
					return a.userError(err, notFoundOr(err, i18n.MsgLeadNotFound, i18n.MsgRequestFailed))
				}
				board := leads.NewBoard()
				board.Replace([]leads.Lead{lead})

				outcome, err := a.workflow.Transition(cmd.Context(), board, id, args[1])
				switch {
				case apperrors.Is(err, apperrors.ErrInvalidStatus):
					return err
				case err != nil:
					return a.userError(err, i18n.MsgStatusFailed)
				case !outcome.Changed:
					fmt.Fprintln(cmd.OutOrStdout(), a.printer.Sprintf(i18n.MsgStatusUnchanged))
				default:
					label := strings.ToLower(outcome.To.Label(a.printer))
					fmt.Fprintln(cmd.OutOrStdout(), a.printer.Sprintf(i18n.MsgStatusUpdated, label))
				}
				return nil
			})
		},
	}
}

func newLeadsStatsCmd(opts *rootOptions) *cobra.Command {
	var pages pageFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count leads by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.protected(cmd, func(a *app, _ *users.User) error {
				board, err := pages.load(cmd, a)
				if err != nil {
					return err
				}
				stats := board.Counts()

				p := a.printer
				w := newTable(cmd.OutOrStdout())
				fmt.Fprintf(w, "%s\t%d\n", p.Sprintf(i18n.LabelTotal), stats.Total)
				fmt.Fprintf(w, "%s\t%d\n", leads.StatusNew.Label(p), stats.Nuevos)
				fmt.Fprintf(w, "%s\t%d\n", leads.StatusContacted.Label(p), stats.Contactados)
				fmt.Fprintf(w, "%s\t%d\n", leads.StatusDiscarded.Label(p), stats.Descartados)
				return w.Flush()
			})
		},
	}

	pages.register(cmd)
	return cmd
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func header(a *app, key string) string {
	return strings.ToUpper(a.printer.Sprintf(key))
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func notFoundOr(err error, notFoundKey, otherKey string) string {
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return notFoundKey
	}
	return otherKey
}
