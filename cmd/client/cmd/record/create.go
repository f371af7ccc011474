package record

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"history/cmd/client/cmd/types"
	"history/internal/domain/record"
)

var (
	createContent string
	createDate    string
	createTags    []string
)

var CreateCmd = &cobra.Command{
	Use:   "create [content]",
	Short: "Add a record",
	Long: `Adds a record dated --date (today by default).

Content comes from the argument, --content, or stdin when neither is given.`,
	Example: `  history record create "Ran 10k in the park" -t sport -t outdoor
  history record create -d 2024-05-01 < notes.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		content := createContent
		if len(args) == 1 {
			content = args[0]
		}
		if content == "" {
			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read content: %w", err)
			}
			content = strings.TrimRight(string(b), "\n")
		}
		if strings.TrimSpace(content) == "" {
			return errors.New("content must not be empty")
		}

		date := createDate
		if date == "" {
			date = time.Now().Format(record.DateLayout)
		}

		item, err := app.Create(cmd.Context(), record.CreateRequest{
			Content:    content,
			RecordDate: date,
			Tags:       createTags,
		})
		if err != nil {
			return err
		}
		if ok, err := encode(cmd, item); ok {
			return err
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Record #%d created\n", item.ID)
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVarP(&createContent, "content", "c", "", "record text")
	CreateCmd.Flags().StringVarP(&createDate, "date", "d", "", "record date, YYYY-MM-DD (default today)")
	CreateCmd.Flags().StringSliceVarP(&createTags, "tag", "t", nil, "tag, repeatable or comma separated")
}
