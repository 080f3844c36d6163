package main

import (
	"fmt"

	"contractor-leads/internal/export"
	"contractor-leads/internal/models"
	"contractor-leads/internal/projection"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the stored leads as a table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		leads := openLeads().Store().All()
		if len(leads) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No leads.")
			return nil
		}

		style := table.StyleLight
		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			style = table.StyleDefault
		}
		header, rows := listRows(leads)
		fmt.Fprintln(cmd.OutOrStdout(), export.RenderTable(header, rows, style))
		fmt.Fprintf(cmd.OutOrStdout(), "%d lead(s)\n", len(leads))
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("plain", false, "use ASCII borders")
}

// listRows lays leads out in the table's column order, without Actions.
func listRows(leads []models.Lead) ([]string, [][]string) {
	var fields []models.Field
	var header []string
	for _, col := range projection.Columns {
		if col.Kind == projection.KindAction {
			continue
		}
		fields = append(fields, col.Field)
		header = append(header, col.Title)
	}

	rows := make([][]string, len(leads))
	for i, lead := range leads {
		row := make([]string, len(fields))
		for j, field := range fields {
			row[j] = lead.Value(field)
		}
		rows[i] = row
	}
	return header, rows
}
