package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/softnova/crm-console/credstore"
	"github.com/softnova/crm-console/crmapi"
	"github.com/softnova/crm-console/gate"
	"github.com/softnova/crm-console/internal/config"
	apperrors "github.com/softnova/crm-console/internal/errors"
	"github.com/softnova/crm-console/internal/i18n"
	"github.com/softnova/crm-console/internal/logging"
	"github.com/softnova/crm-console/internal/telemetry"
	"github.com/softnova/crm-console/leads"
	"github.com/softnova/crm-console/session"
	"github.com/softnova/crm-console/users"
	"github.com/spf13/cobra"
	"golang.org/x/text/message"
)

var errNotLoggedIn = fmt.Errorf("%w: run `console login` first", apperrors.ErrNoSession)

// app holds the wired collaborators shared by the HTML console and the CLI
type app struct {
	cfg      config.Config
	repo     credstore.Repo
	store    *session.Store
	workflow *leads.Workflow
	users    *users.Service
	printer  *message.Printer

	shutdownTracing func(context.Context) error
}

// newApp builds the session over the configured credential store and the CRM client.
// The persisted session is restored before it returns.
func newApp(ctx context.Context, cfg config.Config, logOut io.Writer, logLevel string) (*app, error) {
	logging.Setup(logOut, cfg.GetEnv(), logLevel)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.GetAppName(), cfg.GetOtelEndpoint())
	if err != nil {
		return nil, fmt.Errorf("setup tracing: %w", err)
	}

	repo, err := credstore.Open(ctx, cfg)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("open session store: %w", err)
	}

	a := &app{cfg: cfg, repo: repo, shutdownTracing: shutdownTracing}
	if err := a.wire(); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	a.store.Initialize(ctx)
	log.Debug().Str("state", a.store.State().String()).Msg("Session restored")
	return a, nil
}

func (a *app) wire() error {
	client, err := crmapi.New(a.cfg.GetAPIBaseURL(), a.cfg.GetAPITimeout(), crmapi.WithTracer(telemetry.Tracer()))
	if err != nil {
		return err
	}
	if a.store, err = session.NewStore(a.repo, client); err != nil {
		return err
	}

	authed := client.WithTokenSource(a.store)
	if a.workflow, err = leads.NewWorkflow(authed.Leads()); err != nil {
		return err
	}
	if a.users, err = users.NewService(authed.Users()); err != nil {
		return err
	}
	a.printer = i18n.Printer(i18n.Match(a.cfg.GetLanguage()))
	return nil
}

func (a *app) Close(ctx context.Context) error {
	return errors.Join(a.repo.Close(), a.shutdownTracing(ctx))
}

// requireSession is the CLI side of the access gate
func (a *app) requireSession() (*users.User, error) {
	snap := a.store.Snapshot()
	switch gate.Decide(snap) {
	case gate.ShowLoading:
		return nil, errors.New(a.printer.Sprintf(i18n.MsgCheckingSession))
	case gate.RedirectToLogin:
		return nil, errNotLoggedIn
	}
	return snap.User, nil
}

// withApp runs fn with a wired app and closes it afterwards. CLI commands log warnings
// only unless --verbose is set.
func (o *rootOptions) withApp(cmd *cobra.Command, fn func(a *app) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	level := "warn"
	if o.verbose {
		level = cfg.GetLogLevel()
	}

	a, err := newApp(cmd.Context(), cfg, cmd.ErrOrStderr(), level)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			log.Err(err).Msg("Failed to close the session store")
		}
	}()
	return fn(a)
}

// protected wraps fn with requireSession
func (o *rootOptions) protected(cmd *cobra.Command, fn func(a *app, user *users.User) error) error {
	return o.withApp(cmd, func(a *app) error {
		user, err := a.requireSession()
		if err != nil {
			return err
		}
		return fn(a, user)
	})
}

// userError turns err into the message an operator should see
func (a *app) userError(err error, fallbackKey string) error {
	return errors.New(apperrors.UserMessage(err, a.printer.Sprintf(fallbackKey)))
}
