// Package output renders scan listings, history records, and server
// information for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/rlam13/tio/pkg/tenable"
)

const timeLayout = "2006-01-02 15:04:05"

// ScanList prints every configured scan followed by a count.
func ScanList(w io.Writer, scans []tenable.ScanSummary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "STATUS\t\tSCAN_ID/UUID\t\t\t\t- SCAN NAME")
	for _, scan := range scans {
		fmt.Fprintf(w, "%s\t%s/%s - %s\n", colorStatus(scan.Status), scan.ID, scan.UUID, scan.Name)
	}
	fmt.Fprintf(w, "Number of scans configured: %d\n", len(scans))
	fmt.Fprintln(w)
}

// HistoryHeader prints the ID/name table introducing a scan's history.
func HistoryHeader(w io.Writer, id, name string) {
	fmt.Fprintln(w)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Scan_ID", "Scan Name"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("│")
	table.Append([]string{id, name})
	table.Render()
	fmt.Fprintln(w)
}

// HistoryRecord prints one scan execution: start/end times in local
// human-readable form, then the full record as indented JSON.
func HistoryRecord(w io.Writer, rec tenable.HistoryRecord) error {
	fmt.Fprintf(w, "Date & Time scan started: %s\n", time.Unix(rec.TimeStart, 0).Format(timeLayout))
	fmt.Fprintf(w, "Date & Time scan ended:   %s\n", time.Unix(rec.TimeEnd, 0).Format(timeLayout))
	if err := JSON(w, rec.Raw); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

// FieldValues prints a field/value map as "field : value" lines in sorted
// field order.
func FieldValues(w io.Writer, fields map[string]any) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(w, "%s : %v\n", k, fields[k])
	}
	fmt.Fprintln(w)
}

// JSON writes v with two-space indentation.
func JSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func colorStatus(status string) string {
	switch status {
	case "completed", "imported":
		return color.GreenString(status)
	case "running", "pending", "processing":
		return color.YellowString(status)
	case "aborted", "canceled", "stopped":
		return color.RedString(status)
	default:
		return status
	}
}
