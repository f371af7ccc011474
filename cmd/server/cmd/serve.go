package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"history/internal/app/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API until SIGINT or SIGTERM",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
		defer cancel()

		app, err := server.New(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := app.Close(); err != nil {
				log.Error("storage close error", "error", err)
			}
		}()

		return app.Run(ctx)
	},
}

func init() {
	// a bare invocation serves
	rootCmd.RunE = serveCmd.RunE
}
