package record

import (
	"github.com/spf13/cobra"

	"history/cmd/client/cmd/types"
	"history/internal/app/client"
)

var rangePage client.Page

var RangeCmd = &cobra.Command{
	Use:     "range <start> <end>",
	Short:   "Records dated between two days, inclusive",
	Example: `  history record range 2024-01-01 2024-01-31`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		resp, err := app.DateRange(cmd.Context(), args[0], args[1], rangePage)
		if err != nil {
			return err
		}
		if ok, err := encode(cmd, resp); ok {
			return err
		}

		printItems(cmd.OutOrStdout(), resp.Records)
		printPagination(cmd.OutOrStdout(), resp.Pagination)
		return nil
	},
}

func init() {
	pageFlags(RangeCmd, &rangePage)
}
