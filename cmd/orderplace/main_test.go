package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/orderplace/internal/common"
	"github.com/Veraticus/orderplace/internal/config"
	"github.com/Veraticus/orderplace/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings(t *testing.T, backend, format string) config.Settings {
	t.Helper()
	dir := t.TempDir()
	return config.Settings{
		DataDir:    dir,
		Backend:    backend,
		Format:     format,
		SQLitePath: filepath.Join(dir, "orderplace.db"),
		ExportDir:  dir,
		LogLevel:   "warn",
		LogFormat:  "console",
	}
}

func TestRunSession_FileBackends(t *testing.T) {
	tests := []struct {
		name   string
		format string
		files  []string
	}{
		{name: "json", format: config.FormatJSON, files: []string{"config.json", "items.json", "records.json"}},
		{name: "yaml", format: config.FormatYAML, files: []string{"config.yaml", "items.yaml", "records.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := testSettings(t, config.BackendFile, tt.format)
			in := strings.NewReader("Corner Shop\n$\n2021\n3\nTea\n2.5\n4\n")
			var out bytes.Buffer

			require.NoError(t, runSession(context.Background(), settings, in, &out))

			for _, f := range tt.files {
				_, err := os.Stat(filepath.Join(settings.DataDir, f))
				assert.NoError(t, err, "expected %s", f)
			}
			assert.Contains(t, out.String(), "Setup completed")
			assert.Contains(t, out.String(), "Goodbye 👋")
		})
	}
}

func TestRunSession_SQLiteBackend(t *testing.T) {
	settings := testSettings(t, config.BackendSQLite, config.FormatJSON)

	first := strings.NewReader("Corner Shop\n$\n2021\n3\nTea\n2.5\n4\n")
	require.NoError(t, runSession(context.Background(), settings, first, &bytes.Buffer{}))

	// The second session reuses the saved configuration and catalog.
	var out bytes.Buffer
	second := strings.NewReader("1\n1\n2\n2\n4\n")
	require.NoError(t, runSession(context.Background(), settings, second, &out))
	assert.NotContains(t, out.String(), "Setup completed")
	assert.Contains(t, out.String(), "1. Tea - $2.5")
	assert.Contains(t, out.String(), "Record saved")

	store, err := storage.NewSQLiteStore(settings.SQLitePath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	records, err := storage.NewRepository(store).LoadRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "5", records[0].GrandTotal.String())
}

func TestInitStorage_InvalidDataDir(t *testing.T) {
	settings := testSettings(t, config.BackendFile, config.FormatJSON)
	settings.DataDir = ""

	_, err := initStorage(context.Background(), settings)
	assert.Error(t, err)
}

func restoreDefaultLogger(t *testing.T) {
	t.Helper()
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })
}

func TestSetupLogging(t *testing.T) {
	restoreDefaultLogger(t)

	settings := testSettings(t, config.BackendFile, config.FormatJSON)
	settings.LogLevel = "debug"
	settings.LogFormat = "json"

	var logs bytes.Buffer
	require.NoError(t, setupLogging(&logs, settings))

	slog.Debug("ledger opened", "backend", settings.Backend)
	assert.Contains(t, logs.String(), `"level":"DEBUG"`)
	assert.Contains(t, logs.String(), `"msg":"ledger opened"`)

	settings.LogLevel = "loud"
	assert.ErrorIs(t, setupLogging(&logs, settings), common.ErrInvalidConfig)
}

func TestRunSession_CorruptConfigIsLogged(t *testing.T) {
	restoreDefaultLogger(t)

	var logs bytes.Buffer
	require.NoError(t, common.SetupLogger(&logs, slog.LevelError, "console"))

	settings := testSettings(t, config.BackendFile, config.FormatJSON)
	require.NoError(t, os.WriteFile(filepath.Join(settings.DataDir, "config.json"), []byte("{not json"), 0o600))

	err := runSession(context.Background(), settings, strings.NewReader("4\n"), &bytes.Buffer{})
	require.ErrorIs(t, err, common.ErrParse)
	assert.Contains(t, logs.String(), "level=ERROR")
	assert.Contains(t, logs.String(), "session failed")
}
