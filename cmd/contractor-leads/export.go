package main

import (
	"fmt"

	"contractor-leads/internal/export"
	"contractor-leads/internal/services"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the stored leads to CSV, PDF, TXT, a text table or XLSX",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		name, _ := cmd.Flags().GetString("format")

		format, err := resolveFormat(name, out)
		if err != nil {
			return err
		}

		leads := openLeads()
		svc := services.NewExportService(export.NewExporter(log, export.WithPageSize(cfg.PDFPageSize)), leads.Store(), log)
		written, err := svc.ExportToPath(format, out)
		if err != nil {
			return err
		}
		if !written {
			fmt.Fprintln(cmd.ErrOrStderr(), "No destination given; nothing exported.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d lead(s) to %s\n", leads.Store().Len(), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "", "csv, pdf, txt, table or xlsx (default: from --out extension)")
	exportCmd.Flags().StringP("out", "o", "", "destination file")
}

func resolveFormat(name, out string) (export.Format, error) {
	if name != "" {
		return export.ParseFormat(name)
	}
	if out == "" {
		return export.FormatCSV, nil
	}
	return export.FormatFromPath(out)
}
