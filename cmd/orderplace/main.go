package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Veraticus/orderplace/internal/common"
	"github.com/Veraticus/orderplace/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	settings config.Settings
	version  = "dev"
	rootCmd = &cobra.Command{
		Use:   "orderplace",
		Short: "🧾 Point-of-sale ledger for a single shop",
		Long: `orderplace: a small point-of-sale ledger for one shop.

Keep a catalog of items, record sales against it, and review or export
what was sold by day, week, month or year.`,
		PersistentPreRunE: initConfig,
		RunE:              runRoot,
		SilenceUsage:      true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/orderplace/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("data-dir", ".", "directory holding the ledger documents")
	rootCmd.PersistentFlags().String("backend", config.BackendFile, "storage backend (file, sqlite)")
	rootCmd.PersistentFlags().String("format", config.FormatJSON, "document format for the file backend (json, yaml)")
	rootCmd.PersistentFlags().String("export-dir", ".", "directory for exported reports")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("data.dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("data.backend", rootCmd.PersistentFlags().Lookup("backend"))
	_ = viper.BindPFlag("data.format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("export.dir", rootCmd.PersistentFlags().Lookup("export-dir"))

	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	// A missing .env file is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/orderplace", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// ORDERPLACE_DATA_DIR, ORDERPLACE_LOGGING_LEVEL, ...
	viper.SetEnvPrefix("ORDERPLACE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	settings = loaded

	if err := setupLogging(os.Stderr, settings); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging(w io.Writer, s config.Settings) error {
	level, err := common.ParseLevel(s.LogLevel)
	if err != nil {
		return err
	}
	return common.SetupLogger(w, level, s.LogFormat)
}

func runRoot(cmd *cobra.Command, _ []string) error {
	return runSession(cmd.Context(), settings, cmd.InOrStdin(), cmd.OutOrStdout())
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "orderplace %s\n", version)
		},
	}
}
