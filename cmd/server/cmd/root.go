package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"history/internal/app/server/config"
	"history/internal/utils/logger"
)

var (
	envFile string
	cfg     *config.Config
	log     *slog.Logger
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "historyd",
	Short: "History - personal log records server",
	Long: `History keeps dated, tagged log records per user and serves them
over a JSON HTTP API with date range, tag and keyword queries.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(v, envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log = logger.NewWithLevel(cfg.Env, cfg.Logger.LogLevel)
	return nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", "", "dotenv file to load (default .env when present)")
	flags.String("addr", "", "listen address, overrides RUN_ADDRESS")
	flags.String("driver", "", "storage driver: postgres, sqlite or memory")
	flags.String("dsn", "", "database DSN or sqlite path, overrides DATABASE_URI")
	flags.String("log-level", "", "debug, info, warn or error")

	_ = v.BindPFlag("run_address", flags.Lookup("addr"))
	_ = v.BindPFlag("storage_driver", flags.Lookup("driver"))
	_ = v.BindPFlag("database_uri", flags.Lookup("dsn"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))

	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd)
}
