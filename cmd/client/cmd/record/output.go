package record

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"history/cmd/client/cmd/types"
	"history/internal/app/client"
	"history/internal/domain/record"
)

var (
	idColor   = color.New(color.FgCyan, color.Bold)
	dateColor = color.New(color.FgYellow)
	tagColor  = color.New(color.FgMagenta)
	dimColor  = color.New(color.Faint)
)

// encode writes v as JSON or YAML and reports whether it did. Text output is
// left to the caller.
func encode(cmd *cobra.Command, v any) (bool, error) {
	w := cmd.OutOrStdout()
	switch types.Output(cmd) {
	case types.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case types.OutputYAML:
		node, err := yamlNode(v)
		if err != nil {
			return true, err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

// yamlNode goes through JSON so keys keep their wire names and order.
func yamlNode(v any) (*yaml.Node, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	blockStyle(&doc)
	return &doc, nil
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func printItem(w io.Writer, it record.Item) {
	idColor.Fprintf(w, "#%d", it.ID)
	fmt.Fprint(w, "  ")
	dateColor.Fprint(w, it.RecordDate)
	if len(it.Tags) > 0 {
		fmt.Fprint(w, "  ")
		tagColor.Fprint(w, formatTags(it.Tags))
	}
	fmt.Fprintln(w)
	for _, line := range strings.Split(it.Content, "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
}

func printItemDetail(w io.Writer, it record.Item) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", it.ID)
	fmt.Fprintf(tw, "Date:\t%s\n", it.RecordDate)
	fmt.Fprintf(tw, "Tags:\t%s\n", formatTags(it.Tags))
	fmt.Fprintf(tw, "Created:\t%s\n", it.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(tw, "Updated:\t%s\n", it.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	_ = tw.Flush()
	fmt.Fprintln(w)
	fmt.Fprintln(w, it.Content)
}

func printItems(w io.Writer, items []record.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No records found")
		return
	}
	for i, it := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printItem(w, it)
	}
}

func printPagination(w io.Writer, p record.Pagination) {
	dimColor.Fprintf(w, "\npage %d of %d, %d records\n", p.CurrentPage, max(p.TotalPages, 1), p.TotalRecords)
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = "#" + t
	}
	return strings.Join(out, " ")
}

// pageFlags binds --page and --limit of cmd to p.
func pageFlags(cmd *cobra.Command, p *client.Page) {
	cmd.Flags().IntVarP(&p.Page, "page", "p", 1, "page number, from 1")
	cmd.Flags().IntVarP(&p.Limit, "limit", "l", 20, "records per page, 1 to 100")
}
