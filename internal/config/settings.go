package config

import (
	"fmt"
	"path/filepath"

	"github.com/Veraticus/orderplace/internal/common"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Document encodings for the file backend.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Settings holds the runtime configuration of the ledger.
type Settings struct {
	DataDir    string
	Backend    string
	Format     string
	SQLitePath string
	ExportDir  string
	LogLevel   string
	LogFormat  string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.dir", ".")
	v.SetDefault("data.backend", BackendFile)
	v.SetDefault("data.format", FormatJSON)
	v.SetDefault("data.sqlite_path", "")
	v.SetDefault("export.dir", ".")
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
}

// Load reads Settings from v and validates them.
func Load(v *viper.Viper) (Settings, error) {
	SetDefaults(v)

	s := Settings{
		DataDir:    ExpandPath(v.GetString("data.dir")),
		Backend:    v.GetString("data.backend"),
		Format:     v.GetString("data.format"),
		SQLitePath: ExpandPath(v.GetString("data.sqlite_path")),
		ExportDir:  ExpandPath(v.GetString("export.dir")),
		LogLevel:   v.GetString("logging.level"),
		LogFormat:  v.GetString("logging.format"),
	}
	if s.SQLitePath == "" {
		s.SQLitePath = filepath.Join(s.DataDir, "orderplace.db")
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks that enumerated settings hold known values.
func (s Settings) Validate() error {
	switch s.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("%w: data.backend %q (want %s or %s)", common.ErrInvalidConfig, s.Backend, BackendFile, BackendSQLite)
	}

	switch s.Format {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: data.format %q (want %s or %s)", common.ErrInvalidConfig, s.Format, FormatJSON, FormatYAML)
	}

	if s.DataDir == "" {
		return fmt.Errorf("%w: data.dir is empty", common.ErrInvalidConfig)
	}

	if _, err := common.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	switch s.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format %q (want console or json)", common.ErrInvalidConfig, s.LogFormat)
	}
	return nil
}
