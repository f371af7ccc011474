package record

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"history/cmd/client/cmd/types"
)

var purgeYes bool

var DeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete one record",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		res, err := app.Delete(cmd.Context(), id)
		if err != nil {
			return err
		}
		if ok, err := encode(cmd, res); ok {
			return err
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s (#%d)\n", res.Message, res.DeletedID)
		return nil
	},
}

var PurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every record you own",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if !purgeYes && !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Delete ALL records? Type 'yes' to confirm: ") {
			fmt.Fprintln(cmd.ErrOrStderr(), "Aborted")
			return nil
		}

		res, err := app.Purge(cmd.Context())
		if err != nil {
			return err
		}
		if ok, err := encode(cmd, res); ok {
			return err
		}

		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "%s: %d\n", res.Message, res.DeletedCount)
		return nil
	},
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(line), "yes")
}

func init() {
	PurgeCmd.Flags().BoolVarP(&purgeYes, "yes", "y", false, "do not ask for confirmation")
}
