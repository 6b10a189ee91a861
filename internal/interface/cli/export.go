package cli

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/lmerten/studiplan/internal/core/export"
)

var (
	exportFormat    string
	exportOutput    string
	exportClipboard bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current plan",
	Long: `Export the current save slot's plan.

Formats:
  report  text report rendered through the report template
  ics     iCalendar file with one event per placed course spanning
          its semester

Examples:
  studiplan export
  studiplan export --format ics --output plan.ics
  studiplan export --clipboard`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "report", "Export format (report or ics)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	exportCmd.Flags().BoolVar(&exportClipboard, "clipboard", false, "Copy the report to the clipboard")
}

func runExport(cmd *cobra.Command, args []string) error {
	sess, store, cfg, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if exportClipboard {
		out, err := export.RenderReport(sess, cfg.ReportTemplate)
		if err != nil {
			return err
		}
		if err := clipboard.WriteAll(out); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Println("Report copied to clipboard.")
		return nil
	}

	w := os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	switch exportFormat {
	case "ics":
		if err := export.ICS(sess, w); err != nil {
			return err
		}
	case "report":
		if err := export.Report(sess, cfg.ReportTemplate, w); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown export format %q", exportFormat)
	}

	if exportOutput != "" {
		fmt.Printf("Exported %s to %s\n", exportFormat, exportOutput)
	}
	return nil
}
