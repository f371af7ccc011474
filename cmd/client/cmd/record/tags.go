package record

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"history/cmd/client/cmd/types"
)

var TagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Every tag you used, most frequent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		resp, err := app.Tags(cmd.Context())
		if err != nil {
			return err
		}
		if ok, err := encode(cmd, resp); ok {
			return err
		}

		w := cmd.OutOrStdout()
		if resp.TotalTags == 0 {
			fmt.Fprintln(w, "No tags yet")
			return nil
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, t := range resp.Tags {
			fmt.Fprintf(tw, "%s\t%d\n", tagColor.Sprint("#"+t.Tag), t.Count)
		}
		return tw.Flush()
	},
}
