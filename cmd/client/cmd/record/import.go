package record

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"history/cmd/client/cmd/types"
	"history/internal/domain/record"
)

var ImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Create many records from a JSON array",
	Long: `Reads a JSON array of {"content", "record_date", "tags"} objects and
creates them in one request. Entries with an invalid date are skipped and
reported; the rest are stored together.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		var in io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		var reqs []record.CreateRequest
		if err := json.NewDecoder(in).Decode(&reqs); err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		res, err := app.Import(cmd.Context(), reqs)
		if err != nil {
			return err
		}
		if ok, err := encode(cmd, res); ok {
			return err
		}

		w := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(w, "✓ %d records created\n", res.Count)
		for _, s := range res.Skipped {
			color.New(color.FgRed).Fprintf(w, "  skipped entry %d: %s\n", s.Index, s.Error)
		}
		return nil
	},
}
