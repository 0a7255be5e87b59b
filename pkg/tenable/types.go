package tenable

import "encoding/json"

// ScanSummary describes one configured scan as returned by the scan listing.
// ID and CreationDate keep their wire representation so callers can match
// them against user input without caring how the service serialized them.
type ScanSummary struct {
	Status       string      `json:"status"`
	ID           json.Number `json:"id"`
	UUID         string      `json:"uuid"`
	Name         string      `json:"name"`
	CreationDate json.Number `json:"creation_date"`
}

// HistoryRecord is one past execution of a scan. Raw holds the full record as
// received so it can be re-rendered without losing fields this struct does
// not name.
type HistoryRecord struct {
	HistoryID json.Number    `json:"history_id"`
	UUID      string         `json:"uuid"`
	Status    string         `json:"status"`
	TimeStart int64          `json:"time_start"`
	TimeEnd   int64          `json:"time_end"`
	Raw       map[string]any `json:"-"`
}

// ServerStatus is the health snapshot from the status endpoint.
type ServerStatus struct {
	Status string `json:"status"`
	Code   int    `json:"code"`
}

// ExportFormat is a server-side rendering of scan results.
type ExportFormat string

const (
	FormatNessus ExportFormat = "nessus"
	FormatHTML   ExportFormat = "html"
	FormatPDF    ExportFormat = "pdf"
	FormatCSV    ExportFormat = "csv"
)

// ExportFormats lists every format the export endpoint accepts.
func ExportFormats() []ExportFormat {
	return []ExportFormat{FormatNessus, FormatHTML, FormatPDF, FormatCSV}
}

// ValidFormat reports whether s names a known export format.
func ValidFormat(s string) bool {
	for _, f := range ExportFormats() {
		if s == string(f) {
			return true
		}
	}
	return false
}
