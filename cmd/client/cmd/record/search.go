package record

import (
	"strings"

	"github.com/spf13/cobra"

	"history/cmd/client/cmd/types"
	"history/internal/app/client"
)

var (
	searchPage     client.Page
	searchTagsPage client.Page
	matchAll       bool
)

var SearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Records whose content contains a keyword, ignoring case",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		resp, err := app.Search(cmd.Context(), strings.Join(args, " "), searchPage)
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

var SearchTagsCmd = &cobra.Command{
	Use:   "search-tags <tag>...",
	Short: "Records carrying any of the tags, or all of them with --all",
	Example: `  history record search-tags coffee friends --all
  history record search-tags sport,outdoor`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		resp, err := app.SearchTags(cmd.Context(), args, matchAll, searchTagsPage)
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
	pageFlags(SearchCmd, &searchPage)
	pageFlags(SearchTagsCmd, &searchTagsPage)
	SearchTagsCmd.Flags().BoolVarP(&matchAll, "all", "a", false, "require every tag instead of any")
}
