// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ash CLI, which checks a paper's
// citations against the Retraction Watch dataset.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/ash/internal/settings"
	"github.com/pdiddy/ash/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Configuration keys shared by flags, environment variables (ASH_ prefix,
// dots and dashes become underscores) and the settings file.
const (
	keyDatabase   = "database.path"
	keyFormat     = "format"
	keyValidate   = "check.validate"
	keyCacheDB    = "check.cache_db"
	keyRateLimit  = "check.rate_limit"
	keyMaxRetries = "check.max_retries"
	keyTimeout    = "check.timeout"
	keyBaseURL    = "check.base_url"
)

// cfgFile holds the --config flag.
var cfgFile string

var (
	errMissingPaper    = errors.New("missing PAPER argument")
	errMissingDatabase = errors.New("you must specify the path of a retractions database with --database")
)

var rootCmd = &cobra.Command{
	Use:   "ash [PAPER]",
	Short: "Find retracted works cited by a paper",
	Long: `ash extracts the DOIs cited by PAPER (plain text, TeX, PDF, DOCX or RTF),
looks each one up in a Retraction Watch dataset and reports every citation
that has been retracted, corrected or flagged.

The dataset path given with --database is remembered for later runs;
--clear forgets it. With --validate every DOI is also checked against the
doi.org handle service.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		verbose, _ := cmd.Flags().GetBool("verbose")
		slog.SetDefault(setupLogger(verbose))
		return nil
	},
	RunE: runReport,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "settings file (default $XDG_CONFIG_HOME/ash/config.toml)")
	pf.String("database", "", "path to the retraction dataset CSV (remembered)")
	pf.String("cache-db", settings.DefaultCacheDB(), "SQLite file caching doi.org answers; empty keeps them in memory")
	pf.BoolP("verbose", "v", false, "enable debug logging")

	f := rootCmd.Flags()
	f.Bool("clear", false, "forget the remembered dataset path and exit")
	f.Bool("validate", false, "check every DOI against doi.org")
	f.StringP("format", "f", string(types.FormatText), "report format: text, json, yaml or markdown")
	f.Float64("rate-limit", 5, "maximum doi.org requests per second (0 disables)")
	f.Int("max-retries", 3, "retries when doi.org answers 429")
	f.Duration("timeout", 0, "doi.org request timeout (default 15s)")

	mustBind(keyDatabase, pf.Lookup("database"))
	mustBind(keyCacheDB, pf.Lookup("cache-db"))
	mustBind(keyValidate, f.Lookup("validate"))
	mustBind(keyFormat, f.Lookup("format"))
	mustBind(keyRateLimit, f.Lookup("rate-limit"))
	mustBind(keyMaxRetries, f.Lookup("max-retries"))
	mustBind(keyTimeout, f.Lookup("timeout"))
}

func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// settingsPath returns the --config value or the XDG default.
func settingsPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return settings.DefaultPath()
}

func initConfig() {
	viper.SetConfigFile(settingsPath())
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("ASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using settings file", "path", viper.ConfigFileUsed())
	}
}

// setupLogger creates the stderr logger. Info shows the dataset summary;
// verbose adds per-DOI diagnostics.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig assembles the effective configuration from flags, environment
// and the settings file.
func loadConfig() types.Config {
	return types.Config{
		DatabasePath: viper.GetString(keyDatabase),
		Format:       types.ReportFormat(viper.GetString(keyFormat)),
		Check: types.CheckConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration(keyTimeout),
				UserAgent: "ash/" + version,
			},
			Validate:   viper.GetBool(keyValidate),
			BaseURL:    viper.GetString(keyBaseURL),
			RateLimit:  viper.GetFloat64(keyRateLimit),
			MaxRetries: viper.GetInt(keyMaxRetries),
			CacheDB:    viper.GetString(keyCacheDB),
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
