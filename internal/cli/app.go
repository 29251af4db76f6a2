// Package cli provides the tariffhound command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tariffhound/tariffhound/filecache"
	"github.com/tariffhound/tariffhound/internal/config"
	"github.com/tariffhound/tariffhound/internal/logging"
)

// Version information set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var dumper = spew.ConfigState{Indent: "  ", SortKeys: true}

// App represents the CLI application.
type App struct {
	root       *cobra.Command
	stdout     io.Writer
	stderr     io.Writer
	httpClient *http.Client

	cfgPath  string
	logLevel string
	cfg      *config.Config
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		httpClient: http.DefaultClient,
	}

	app.root = &cobra.Command{
		Use:   "tariffhound",
		Short: "Fetch, cache and normalize AWS pricing and inventory data",
		Long: `tariffhound fetches AWS Price List Bulk API documents and AWS SDK
inventory data, keeps them in an on-disk artifact cache and prints the
normalized results.

Remote documents are refetched only when their upstream fingerprint changes
or the cached copy grows older than the configured maximum age.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
	}

	app.root.PersistentFlags().StringVarP(&app.cfgPath, "config", "c", "", "Path to configuration file")
	app.root.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "Log level override (trace, debug, info, warn, error)")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newServicesCmd(),
		app.newRegionsCmd(),
		app.newOffersCmd(),
		app.newSavingsPlansCmd(),
		app.newInstanceTypesCmd(),
		app.newCacheParamsCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// setup loads configuration and initializes logging before any command runs.
func (a *App) setup() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if _, err := logging.Init(cfg); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// cacheOptions maps the loaded configuration onto cache options.
func (a *App) cacheOptions() []filecache.Option {
	return []filecache.Option{
		filecache.WithRoot(a.cfg.CacheDir),
		filecache.WithMaxAge(a.cfg.CacheMaxAge),
	}
}

// dump pretty-prints a loaded document to stdout.
func (a *App) dump(v any) {
	dumper.Fdump(a.stdout, v)
}

func reportLoad(key filecache.Key, hit bool) {
	logrus.WithFields(logrus.Fields{
		"key":       key.String(),
		"cache_hit": hit,
	}).Info("document loaded")
}

// newVersionCmd creates the version command.
func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "tariffhound version %s\n", Version)
			fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(a.stdout, "  Build date: %s\n", BuildDate)
		},
	}
}
