package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rlam13/tio/pkg/tenable"
)

var (
	exportScanID    int
	exportHistoryID int
)

var exportCmd = &cobra.Command{
	Use:   "export -s scan_id [--hid history_id] filename format...",
	Short: "Export scan results to the current directory",
	Long: `Export one scan's results to <filename>.<format> for each requested
format. Formats: nessus, html, pdf, csv.

PDF and HTML are only available for executions within the service's
retention window; older results export as csv or nessus only.

Eg. tio export -s 1337 --hid 12345678 report pdf csv`,
	Args: cobra.MinimumNArgs(2),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().IntVarP(&exportScanID, "scan_id", "s", 0, "ID of the scan to export")
	exportCmd.Flags().IntVar(&exportHistoryID, "hid", 0, "history_id of the execution to export (the \"history_id\" field from info -s)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportScanID == 0 {
		return fmt.Errorf("--scan_id (-s) is required")
	}

	filename, formats := args[0], args[1:]
	for _, f := range formats {
		if !tenable.ValidFormat(f) {
			return fmt.Errorf("unknown export format %q (supported: nessus, html, pdf, csv)", f)
		}
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Exporting the following files to current directory:")
	fmt.Fprintln(out)

	// The first failing format aborts the rest; files already written stay
	// on disk and their names were already printed.
	for _, f := range formats {
		name := filename + "." + f
		if err := exportOne(cmd, client, name, tenable.ExportFormat(f)); err != nil {
			return err
		}
		fmt.Fprintln(out, name)
	}
	fmt.Fprintln(out)

	return nil
}

func exportOne(cmd *cobra.Command, client *tenable.Client, name string, format tenable.ExportFormat) error {
	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}

	if err := client.Export(cmd.Context(), exportScanID, exportHistoryID, format, file); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
