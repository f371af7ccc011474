package record

import (
	"github.com/spf13/cobra"

	"history/cmd/client/cmd/types"
	"history/internal/app/client"
)

var (
	listSort string
	listPage client.Page
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List records page by page",
	Long: `Lists your records. --sort is date_desc (default) or date_asc.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		resp, err := app.List(cmd.Context(), listPage, listSort)
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
	pageFlags(ListCmd, &listPage)
	ListCmd.Flags().StringVarP(&listSort, "sort", "s", "date_desc", "date_desc or date_asc")
}
