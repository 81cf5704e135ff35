package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// WriteJSON writes formatted JSON to w, optionally wrapped in a slack code block.
func WriteJSON(w io.Writer, v any, slackMode bool) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if slackMode {
		fmt.Fprintln(w, "```")
	}
	fmt.Fprintln(w, string(output))
	if slackMode {
		fmt.Fprintln(w, "```")
	}
	return nil
}

// WriteTable writes rows under header as an aligned text table, optionally
// wrapped in a slack code block. Nothing is written when rows is empty.
func WriteTable(w io.Writer, header []string, rows [][]string, slackMode bool) {
	if len(rows) == 0 {
		return
	}
	if slackMode {
		fmt.Fprintln(w, "```")
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
	if slackMode {
		fmt.Fprintln(w, "```")
	}
}
