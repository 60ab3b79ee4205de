// Package cli is the mediassist command tree: the desk pages as subcommands,
// login management, and the development API server.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mediassist/internal/api"
	"mediassist/internal/config"
	"mediassist/internal/logger"
	"mediassist/internal/metrics"
	"mediassist/internal/session"
)

// errReported marks a failure whose message has already been printed.
var errReported = errors.New("reported")

type app struct {
	cfg      *config.Config
	log      *zap.Logger
	sessions session.FileStore
	client   *api.Client

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}

	sessions := session.FileStore{Path: cfg.Session.Path}
	sess, err := sessions.Load()
	if err != nil {
		return err
	}
	client, err := api.NewClient(cfg.API.BaseURL,
		api.WithSession(sess),
		api.WithLogger(log),
		api.WithMetrics(metrics.NewCollector("mediassist_desk")),
	)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	a.sessions = sessions
	a.client = client
	a.in = cmd.InOrStdin()
	a.out = cmd.OutOrStdout()
	a.errOut = cmd.ErrOrStderr()
	return nil
}

// NewRootCommand builds the full command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "mediassist",
		Short:         "Clinic front desk for patients, doctors, appointments and billing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.AddCommand(serveCmd(a))
	root.AddCommand(loginCmd(a), signupCmd(a), logoutCmd(a), whoamiCmd(a))
	root.AddCommand(
		patientsCmd(a),
		doctorsCmd(a),
		appointmentsCmd(a),
		billingCmd(a),
		prescriptionsCmd(a),
		medicalRecordsCmd(a),
	)
	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}
