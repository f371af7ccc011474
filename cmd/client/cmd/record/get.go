package record

import (
	"github.com/spf13/cobra"

	"history/cmd/client/cmd/types"
)

var GetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		item, err := app.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		if ok, err := encode(cmd, item); ok {
			return err
		}

		printItemDetail(cmd.OutOrStdout(), *item)
		return nil
	},
}
