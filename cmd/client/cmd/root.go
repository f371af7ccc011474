package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"history/cmd/client/cmd/auth"
	"history/cmd/client/cmd/record"
	"history/cmd/client/cmd/types"
	"history/internal/app/client"
	"history/internal/app/client/config"
	"history/internal/utils/logger"
)

var (
	cfgFile   string
	serverURL string
	output    string
	debug     bool
	noColor   bool
	v         = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "history",
	Short: "History - command line client for your personal log",
	Long: `History keeps dated, tagged notes on a server and lets you query them
by date range, tag and keyword.

Configuration is read from ~/.history/config.yaml and the environment
(SERVER_ADDRESS, ENABLE_TLS, CONFIG_DIR).`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	switch output {
	case types.OutputText, types.OutputJSON, types.OutputYAML:
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
	if noColor || output != types.OutputText || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	level := "warn"
	if debug {
		level = "debug"
	}
	log := logger.NewWriter(os.Stderr, cfg.Env, level)

	app, err := client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("init client: %w", err)
	}

	ctx := context.WithValue(cmd.Context(), types.ClientAppKey, app)
	ctx = context.WithValue(ctx, types.OutputKey, output)
	cmd.SetContext(ctx)
	return nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ~/.history/config.yaml)")
	flags.StringVar(&serverURL, "server", "", "server address, overrides SERVER_ADDRESS")
	flags.StringVarP(&output, "output", "o", types.OutputText, "text, json or yaml")
	flags.BoolVar(&debug, "debug", false, "log requests to stderr")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(auth.AuthCmd, record.RecordCmd, healthCmd)
}
