package backend

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presupuesto/internal/config"
	"presupuesto/internal/core"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFromAppConfig(t *testing.T) {
	_, err := FromAppConfig(nil)
	assert.Error(t, err)

	_, err = FromAppConfig(&config.Config{DataBackend: "sheets"})
	assert.Error(t, err)

	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDBPath: "x.db", GoogleSpreadsheetID: "sheet"})
	require.NoError(t, err)
	assert.Equal(t, SQLiteBackend, cfg.Type)
	assert.Equal(t, "x.db", cfg.SQLiteDBPath)
	assert.Equal(t, "sheet", cfg.GoogleSpreadsheetID)
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, Config{Type: "nope"}.Validate())
	assert.Error(t, Config{Type: SQLiteBackend}.Validate())
	assert.NoError(t, Config{Type: MemoryBackend}.Validate())
}

func TestCreateMemoryBackend(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(seed, []byte(`{
		"expenses": [{"user_id": 1, "type": "purchase", "amount": 12.5, "description": "Lunch", "date": "2024-01-05"}]
	}`), 0644))

	res, err := NewFactory(quietLogger()).CreateBackend(context.Background(), Config{Type: MemoryBackend, MemorySeedFile: seed})
	require.NoError(t, err)
	defer res.Cleanup()

	require.NoError(t, res.Store.Ping(context.Background()))
	rows, err := res.Store.QueryExpenses(context.Background(), 1, core.ExpenseFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1250), rows[0].Amount.Cents)
}

func TestCreateSQLiteBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "presupuesto.db")

	res, err := NewFactory(quietLogger()).CreateBackend(context.Background(), Config{Type: SQLiteBackend, SQLiteDBPath: path})
	require.NoError(t, err)
	defer res.Cleanup()

	require.NoError(t, res.Store.Ping(context.Background()))
	cats, err := res.Store.QueryCategories(context.Background(), 1, core.CategoryFilter{})
	require.NoError(t, err)
	assert.NotEmpty(t, cats, "default categories are migrated in")
}

func TestNewExportWriterRequiresSpreadsheet(t *testing.T) {
	for _, typ := range []BackendType{MemoryBackend, SQLiteBackend} {
		w, err := NewExportWriter(context.Background(), Config{Type: typ, SQLiteDBPath: "x.db"}, quietLogger())
		assert.ErrorIs(t, err, ErrSpreadsheetNotConfigured, typ.String())
		assert.Nil(t, w)
	}
}
