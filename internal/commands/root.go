// Package commands implements the presupuesto command line: analytics
// queries, file exports and database maintenance against the configured
// record store.
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"presupuesto/internal/analytics"
	"presupuesto/internal/backend"
	"presupuesto/internal/config"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

var errMissingUser = errors.New("--user is required and must be positive")

// Option customizes the root command; tests use it to inject a store.
type Option func(*app)

// WithStore makes every command read from store instead of the configured
// backend.
func WithStore(store backend.Store) Option {
	return func(a *app) {
		a.open = func(context.Context) (backend.Store, func() error, error) {
			return store, func() error { return nil }, nil
		}
	}
}

// WithClock overrides "today" for analytics commands.
func WithClock(now func() time.Time) Option {
	return func(a *app) { a.now = now }
}

type app struct {
	open func(ctx context.Context) (backend.Store, func() error, error)
	now  func() time.Time

	userID      int64
	backendType string
	dbPath      string
	seedFile    string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{now: time.Now}
	a.open = a.openConfigured
	for _, opt := range opts {
		opt(a)
	}

	rootCmd := &cobra.Command{
		Use:     "presupuesto",
		Short:   "Personal finance analytics",
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.Int64VarP(&a.userID, "user", "u", 0, "user id the query runs for")
	pf.StringVar(&a.backendType, "backend", "", "record store: sqlite or memory (default from DATA_BACKEND)")
	pf.StringVar(&a.dbPath, "db", "", "SQLite database path (default from SQLITE_DB_PATH)")
	pf.StringVar(&a.seedFile, "seed-file", "", "JSON seed for the memory backend (default from MEMORY_SEED_FILE)")

	rootCmd.AddCommand(
		a.newDashboardCommand(),
		a.newChartsCommand(),
		a.newTrendsCommand(),
		a.newPredictionsCommand(),
		a.newCompareCommand(),
		a.newExportCommand(),
		a.newMigrateCommand(),
		a.newSeedCommand(),
	)

	return rootCmd
}

// config reads the environment and applies flag overrides.
func (a *app) config() *config.Config {
	cfg := config.Load()
	if a.backendType != "" {
		cfg.DataBackend = a.backendType
	}
	if a.dbPath != "" {
		cfg.SQLiteDBPath = a.dbPath
	}
	if a.seedFile != "" {
		cfg.MemorySeedFile = a.seedFile
	}
	return cfg
}

func (a *app) openConfigured(ctx context.Context) (backend.Store, func() error, error) {
	backendCfg, err := backend.FromAppConfig(a.config())
	if err != nil {
		return nil, nil, err
	}
	res, err := backend.NewFactory(nil).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, nil, err
	}
	return res.Store, res.Cleanup, nil
}

// withEngine opens the store, runs fn against an engine and closes the store.
func (a *app) withEngine(ctx context.Context, fn func(*analytics.Engine) error) (err error) {
	if a.userID <= 0 {
		return errMissingUser
	}
	store, closeFn, err := a.open(ctx)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		if cerr := closeFn(); cerr != nil && err == nil {
			err = fmt.Errorf("closing store: %w", cerr)
		}
	}()
	return fn(analytics.NewEngine(store, analytics.WithClock(a.now)))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
