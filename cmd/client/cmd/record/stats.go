package record

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"history/cmd/client/cmd/types"
)

var statsPeriod string

var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summary of your records over a period",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		resp, err := app.Stats(cmd.Context(), statsPeriod)
		if err != nil {
			return err
		}
		if ok, err := encode(cmd, resp); ok {
			return err
		}

		w := cmd.OutOrStdout()
		since := "the beginning"
		if resp.DateRange.StartDate != nil {
			since = *resp.DateRange.StartDate
		}
		idColor.Fprintf(w, "Period: %s", resp.Period)
		dimColor.Fprintf(w, " (%s to %s)\n", since, resp.DateRange.EndDate)
		fmt.Fprintf(w, "Total records:     %d\n", resp.TotalRecords)
		fmt.Fprintf(w, "Records in period: %d\n", resp.RecordsInPeriod)

		if len(resp.MostUsedTags) > 0 {
			tags := make([]string, 0, len(resp.MostUsedTags))
			for _, t := range resp.MostUsedTags {
				tags = append(tags, fmt.Sprintf("%s (%d)", tagColor.Sprint("#"+t.Tag), t.Count))
			}
			fmt.Fprintf(w, "Most used tags:    %s\n", strings.Join(tags, ", "))
		}
		if len(resp.RecordsByDate) > 0 {
			fmt.Fprintln(w, "By date:")
			for _, d := range resp.RecordsByDate {
				fmt.Fprintf(w, "  %s  %s\n", dateColor.Sprint(d.Date), strings.Repeat("■", min(d.Count, 40)))
			}
		}
		return nil
	},
}

func init() {
	StatsCmd.Flags().StringVar(&statsPeriod, "period", "month", "week, month, year or all")
}
