package record

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// RecordCmd groups every command working on log records.
var RecordCmd = &cobra.Command{
	Use:     "record",
	Aliases: []string{"records", "r"},
	Short:   "Create, query and delete log records",
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid record id %q", s)
	}
	return id, nil
}

func init() {
	RecordCmd.AddCommand(
		ListCmd,
		GetCmd,
		CreateCmd,
		UpdateCmd,
		DeleteCmd,
		PurgeCmd,
		ImportCmd,
		RangeCmd,
		SearchCmd,
		SearchTagsCmd,
		TagsCmd,
		StatsCmd,
	)
}
