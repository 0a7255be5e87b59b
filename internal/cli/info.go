package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rlam13/tio/internal/output"
	"github.com/rlam13/tio/pkg/tenable"
)

var (
	infoScanID int
	infoOffset int
	infoUUID   string
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display information for all configured scans",
	Long: `Display every configured scan with its status, ID/UUID, and name.

With --scan_id, also show the scan's most recent history records. With
--scan_id and --uuid, additionally show the scan's full configuration.`,
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().IntVarP(&infoScanID, "scan_id", "s", 0, "show latest record(s) of the scan with this ID")
	infoCmd.Flags().IntVarP(&infoOffset, "offset", "o", 1, "number of history records to display, most recent first (non-positive shows none)")
	infoCmd.Flags().StringVarP(&infoUUID, "uuid", "u", "", "history uuid; combine with --scan_id to view scan configuration")
}

func runInfo(cmd *cobra.Command, args []string) error {
	if infoUUID != "" {
		if _, err := uuid.Parse(infoUUID); err != nil {
			return fmt.Errorf("invalid history uuid %q: %w", infoUUID, err)
		}
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	scans, err := client.Scans(ctx)
	if err != nil {
		return err
	}
	output.ScanList(out, scans)

	if infoScanID == 0 {
		return nil
	}

	if err := printScanHistory(cmd, client, out, scans); err != nil {
		return err
	}

	if infoUUID != "" {
		details, err := client.ScanDetails(ctx, infoScanID, infoUUID)
		if err != nil {
			return err
		}
		output.FieldValues(out, details)
	}

	return nil
}

// printScanHistory shows up to infoOffset history records of the requested
// scan, most recent first.
func printScanHistory(cmd *cobra.Command, client *tenable.Client, out io.Writer, scans []tenable.ScanSummary) error {
	match := findScan(scans, infoScanID)

	// A scan that was never launched has no records to look up.
	if match != nil && match.CreationDate.String() == "0" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "The scan_id referenced has zero records.")
		fmt.Fprintln(out)
		return nil
	}

	history, err := client.ScanHistory(cmd.Context(), infoScanID)
	if err != nil {
		return err
	}

	id, name := strconv.Itoa(infoScanID), ""
	if match != nil {
		id, name = match.ID.String(), match.Name
	}
	output.HistoryHeader(out, id, name)

	offset := infoOffset
	if offset > len(history) {
		offset = len(history)
		fmt.Fprintf(out, "Note: maximum records for this configured scan is: %d\n\n", offset)
	}

	for i := 0; i < offset; i++ {
		if err := output.HistoryRecord(out, history[i]); err != nil {
			return fmt.Errorf("printing history record for scan %d: %w", infoScanID, err)
		}
	}
	return nil
}

// findScan matches a summary by comparing serialized IDs for string
// equality; the first match wins.
func findScan(scans []tenable.ScanSummary, scanID int) *tenable.ScanSummary {
	want := strconv.Itoa(scanID)
	for i := range scans {
		if scans[i].ID.String() == want {
			return &scans[i]
		}
	}
	return nil
}
