package record

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"history/cmd/client/cmd/types"
	"history/internal/domain/record"
)

var (
	updateContent string
	updateDate    string
	updateTags    []string
	clearTags     bool
)

var UpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a record",
	Long: `Changes only the fields given as flags. --tag replaces the whole tag
list; --clear-tags removes every tag.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		var req record.UpdateRequest
		flags := cmd.Flags()
		if flags.Changed("content") {
			req.Content = &updateContent
		}
		if flags.Changed("date") {
			req.RecordDate = &updateDate
		}
		switch {
		case clearTags:
			req.Tags = []string{}
		case flags.Changed("tag"):
			req.Tags = updateTags
		}
		if req.Content == nil && req.RecordDate == nil && req.Tags == nil {
			return errors.New("nothing to update, pass --content, --date, --tag or --clear-tags")
		}

		item, err := app.Update(cmd.Context(), id, req)
		if err != nil {
			return err
		}
		if ok, err := encode(cmd, item); ok {
			return err
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Record #%d updated\n", item.ID)
		return nil
	},
}

func init() {
	UpdateCmd.Flags().StringVarP(&updateContent, "content", "c", "", "new record text")
	UpdateCmd.Flags().StringVarP(&updateDate, "date", "d", "", "new record date, YYYY-MM-DD")
	UpdateCmd.Flags().StringSliceVarP(&updateTags, "tag", "t", nil, "new tag list, repeatable or comma separated")
	UpdateCmd.Flags().BoolVar(&clearTags, "clear-tags", false, "remove every tag")
	UpdateCmd.MarkFlagsMutuallyExclusive("tag", "clear-tags")
}
