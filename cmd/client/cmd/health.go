package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"history/cmd/client/cmd/types"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the server is up",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		h, err := app.Health(ctx)
		if err != nil {
			return fmt.Errorf("server is not healthy: %w", err)
		}
		if types.Output(cmd) == types.OutputJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(h)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s (%s)\n", h.Message, h.Status)
		return nil
	},
}
