package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	ports "presupuesto/internal/sheets"
	gsheet "presupuesto/internal/sheets/google"
	"presupuesto/internal/storage"
	"presupuesto/internal/storage/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &Result{
		Store:   repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*Result, error) {
	store, err := memory.NewFromFile(config.MemorySeedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize memory store: %w", err)
	}

	f.logger.Info("Initialized memory backend", "seed_file", config.MemorySeedFile)

	return &Result{
		Store:   store,
		Cleanup: func() error { return nil },
	}, nil
}

// ErrSpreadsheetNotConfigured is returned when an export writer is requested
// without GOOGLE_SPREADSHEET_ID. Queued exports would otherwise be acked and
// dropped.
var ErrSpreadsheetNotConfigured = errors.New("GOOGLE_SPREADSHEET_ID is not set")

// NewExportWriter returns the Google Sheets writer for the configured
// spreadsheet.
func NewExportWriter(ctx context.Context, config Config, logger *slog.Logger) (ports.ExportWriter, error) {
	if config.GoogleSpreadsheetID == "" {
		return nil, ErrSpreadsheetNotConfigured
	}
	cli, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", config.GoogleSpreadsheetID)
	return cli, nil
}
