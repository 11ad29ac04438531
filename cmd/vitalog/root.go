package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/vitalog/internal/config"
	"github.com/terraincognita07/vitalog/internal/localstore"
	"github.com/terraincognita07/vitalog/internal/notify"
	"github.com/terraincognita07/vitalog/internal/report"
	"github.com/terraincognita07/vitalog/internal/restapi"
	"github.com/terraincognita07/vitalog/internal/session"
	"github.com/terraincognita07/vitalog/internal/tracking"
)

var errNotSignedIn = errors.New("not signed in; run `vitalog login` first")

type app struct {
	cfg      config.Config
	store    *localstore.Store
	client   *restapi.Client
	sessions *session.Store
	tracker  *tracking.Service
	notifier *notify.Dispatcher
	exporter *report.Exporter
	log      *slog.Logger
}

func newRootCommand() *cobra.Command {
	var configPath string
	var verbose bool
	application := &app{}

	root := &cobra.Command{
		Use:           "vitalog",
		Short:         "Track supplements, intake, and symptoms from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return application.bootstrap(configPath, verbose)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newRegisterCommand(application),
		newLoginCommand(application),
		newLogoutCommand(application),
		newStatusCommand(application),
		newSearchCommand(application),
		newTrackCommand(application),
		newIntakeCommand(application),
		newSymptomsCommand(application),
		newAlertsCommand(application),
		newReportCommand(application),
	)
	return root
}

func (application *app) bootstrap(configPath string, verbose bool) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	application.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	application.cfg = cfg

	store, err := localstore.Open(cfg.DatabasePath())
	if err != nil {
		return err
	}
	application.store = store

	client, err := restapi.NewClient(restapi.Config{
		BaseURL:    cfg.APIBaseURL,
		Timeout:    cfg.RequestTimeout,
		RetryCount: cfg.RetryCount,
	}, store, application.log)
	if err != nil {
		return err
	}
	application.client = client

	application.notifier = notify.NewDispatcher(newTerminalSink())
	application.sessions = session.NewStore(client, store, application.log)
	application.tracker = tracking.NewService(client, client, client, application.log)
	application.sessions.RegisterClearer(application.tracker)
	application.exporter = report.NewExporter(application.log)
	return nil
}

// requireAuth resolves the persisted session and fails fast when the
// user is anonymous, instead of letting each API call bounce with 401.
func (application *app) requireAuth(ctx context.Context) error {
	if application.sessions.Restore(ctx) != session.StateAuthenticated {
		return errNotSignedIn
	}
	return nil
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Minute)
}

type terminalSink struct{}

func newTerminalSink() *terminalSink {
	return &terminalSink{}
}

func (sink *terminalSink) Show(toast notify.Toast) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", toast.Level, toast.Message)
}

func (sink *terminalSink) Clear() {}
