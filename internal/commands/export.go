package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"presupuesto/internal/analytics"
	"presupuesto/internal/export"
)

func (a *app) newExportCommand() *cobra.Command {
	var (
		w          windowFlags
		format     string
		exportType string
		out        string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a window's records as CSV, XLSX or JSON",
		Long: "Write a window's records as CSV, XLSX or JSON.\n\n" +
			"Without --out the file is named after the window and written to the\n" +
			"current directory. Use --out - to write to stdout.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			encode, err := encoderFor(format)
			if err != nil {
				return err
			}
			return a.withEngine(cmd.Context(), func(e *analytics.Engine) error {
				data, err := e.Export(cmd.Context(), a.userID, w.start, w.end, exportType)
				if err != nil {
					return err
				}
				var buf bytes.Buffer
				if err := encode(&buf, data); err != nil {
					return err
				}
				if out == "-" {
					_, err := cmd.OutOrStdout().Write(buf.Bytes())
					return err
				}
				path := out
				if path == "" {
					path = export.Filename(format, data.Period)
				}
				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", path, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d expenses, %d income)\n", path, len(data.Expenses), len(data.Income))
				return nil
			})
		},
	}
	w.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", export.FormatCSV, "output format: csv, xlsx or json")
	cmd.Flags().StringVarP(&exportType, "type", "t", string(analytics.ExportAll), "records to include: all, expenses or income")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path, - for stdout")
	return cmd
}

func encoderFor(format string) (func(*bytes.Buffer, *analytics.ExportData) error, error) {
	switch format {
	case export.FormatCSV:
		return func(b *bytes.Buffer, d *analytics.ExportData) error { return export.WriteCSV(b, d) }, nil
	case export.FormatXLSX:
		return func(b *bytes.Buffer, d *analytics.ExportData) error { return export.WriteXLSX(b, d) }, nil
	case export.FormatJSON:
		return func(b *bytes.Buffer, d *analytics.ExportData) error { return printJSON(b, d) }, nil
	default:
		return nil, fmt.Errorf("unknown format %q: must be csv, xlsx or json", format)
	}
}
