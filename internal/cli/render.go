package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/table"

	"github.com/golobby/stmt"
)

func renderRecords(out io.Writer, records []stmt.Record) {
	if len(records) == 0 {
		fmt.Fprintln(out, "(0 rows)")
		return
	}
	w := table.NewWriter()
	w.SetOutputMirror(out)
	header := table.Row{}
	for _, c := range records[0].Columns() {
		header = append(header, c)
	}
	w.AppendHeader(header)
	for _, r := range records {
		row := table.Row{}
		for _, v := range r.Values() {
			if v == nil {
				v = "NULL"
			}
			row = append(row, v)
		}
		w.AppendRow(row)
	}
	w.Render()
	fmt.Fprintf(out, "(%d rows)\n", len(records))
}
