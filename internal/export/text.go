package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// writeText emits one "Field: value" block per lead, each followed by a blank line.
func writeText(w io.Writer, header []string, rows [][]string) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		for i, value := range row {
			if _, err := fmt.Fprintf(bw, "%s: %s\n", header[i], value); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// writeTable emits a fixed-width grid.
func writeTable(w io.Writer, header []string, rows [][]string) error {
	_, err := io.WriteString(w, RenderTable(header, rows, table.StyleDefault)+"\n")
	return err
}

// RenderTable lays rows out under header with the given go-pretty style.
func RenderTable(header []string, rows [][]string, style table.Style) string {
	t := table.NewWriter()
	t.SetStyle(style)

	headerRow := make(table.Row, len(header))
	for i, col := range header {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, value := range row {
			r[i] = value
		}
		t.AppendRow(r)
	}
	return t.Render()
}
