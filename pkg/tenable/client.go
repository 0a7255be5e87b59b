// Package tenable is a minimal client for the Tenable.io REST API covering
// scan listing, scan history, scan configuration, result export, and server
// information.
package tenable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the Tenable.io cloud endpoint.
const DefaultBaseURL = "https://cloud.tenable.com"

// Client talks to the Tenable.io API. All requests carry the X-ApiKeys
// header built from the access and secret key pair.
type Client struct {
	baseURL      string
	accessKey    string
	secretKey    string
	http         *http.Client
	pollInterval time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API endpoint, e.g. an
// httptest server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithPollInterval sets how often export status is polled.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.pollInterval = d }
}

// NewClient builds a Client authenticated with the given key pair.
func NewClient(accessKey, secretKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:      DefaultBaseURL,
		accessKey:    accessKey,
		secretKey:    secretKey,
		http:         &http.Client{Timeout: 30 * time.Second},
		pollInterval: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Scans returns the configured scans, in the order the service lists them.
func (c *Client) Scans(ctx context.Context) ([]ScanSummary, error) {
	var body struct {
		Scans []ScanSummary `json:"scans"`
	}
	if err := c.getJSON(ctx, "/scans", nil, &body); err != nil {
		return nil, fmt.Errorf("listing scans: %w", err)
	}
	return body.Scans, nil
}

// ScanHistory returns past executions of one scan, most recent first as
// returned by the service.
func (c *Client) ScanHistory(ctx context.Context, scanID int) ([]HistoryRecord, error) {
	var body struct {
		History []json.RawMessage `json:"history"`
	}
	path := "/scans/" + strconv.Itoa(scanID) + "/history"
	if err := c.getJSON(ctx, path, nil, &body); err != nil {
		return nil, fmt.Errorf("fetching history for scan %d: %w", scanID, err)
	}

	records := make([]HistoryRecord, 0, len(body.History))
	for _, raw := range body.History {
		var rec HistoryRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decoding history record for scan %d: %w", scanID, err)
		}
		if err := json.Unmarshal(raw, &rec.Raw); err != nil {
			return nil, fmt.Errorf("decoding history record for scan %d: %w", scanID, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ScanDetails returns the configuration of one scan execution as the
// field/value map the service reports under "info".
func (c *Client) ScanDetails(ctx context.Context, scanID int, historyUUID string) (map[string]any, error) {
	var body struct {
		Info map[string]any `json:"info"`
	}
	params := url.Values{"history_id": {historyUUID}}
	if err := c.getJSON(ctx, "/scans/"+strconv.Itoa(scanID), params, &body); err != nil {
		return nil, fmt.Errorf("fetching details for scan %d: %w", scanID, err)
	}
	return body.Info, nil
}

// Export renders a scan's results in the given format server-side and
// streams the file into w. The export endpoint is asynchronous: the request
// returns a file token whose status is polled until ready, then the file is
// downloaded. historyID narrows the export to one execution when non-zero.
func (c *Client) Export(ctx context.Context, scanID, historyID int, format ExportFormat, w io.Writer) error {
	req := map[string]any{"format": string(format)}
	if historyID != 0 {
		req["history_id"] = historyID
	}

	exportPath := "/scans/" + strconv.Itoa(scanID) + "/export"
	var created struct {
		File json.Number `json:"file"`
	}
	if err := c.postJSON(ctx, exportPath, req, &created); err != nil {
		return fmt.Errorf("requesting %s export of scan %d: %w", format, scanID, err)
	}

	filePath := exportPath + "/" + created.File.String()
	if err := c.waitForExport(ctx, filePath); err != nil {
		return fmt.Errorf("waiting for %s export of scan %d: %w", format, scanID, err)
	}

	if err := c.download(ctx, filePath+"/download", w); err != nil {
		return fmt.Errorf("downloading %s export of scan %d: %w", format, scanID, err)
	}
	return nil
}

// ServerProperties returns the server's property map.
func (c *Client) ServerProperties(ctx context.Context) (map[string]any, error) {
	var props map[string]any
	if err := c.getJSON(ctx, "/server/properties", nil, &props); err != nil {
		return nil, fmt.Errorf("fetching server properties: %w", err)
	}
	return props, nil
}

// ServerStatus returns the server's current status.
func (c *Client) ServerStatus(ctx context.Context) (ServerStatus, error) {
	var status ServerStatus
	if err := c.getJSON(ctx, "/server/status", nil, &status); err != nil {
		return ServerStatus{}, fmt.Errorf("fetching server status: %w", err)
	}
	return status, nil
}

func (c *Client) waitForExport(ctx context.Context, filePath string) error {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		var status struct {
			Status string `json:"status"`
		}
		if err := c.getJSON(ctx, filePath+"/status", nil, &status); err != nil {
			return err
		}
		if status.Status == "ready" {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) download(ctx context.Context, path string, w io.Writer) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("streaming response: %w", err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body io.Reader) (*http.Response, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-ApiKeys", fmt.Sprintf("accessKey=%s; secretKey=%s", c.accessKey, c.secretKey))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, fmt.Errorf("%s %s: %s", method, path, apiError(resp))
	}
	return resp, nil
}

// apiError extracts the service's error message from a failed response,
// falling back to the HTTP status line.
func apiError(resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err == nil && body.Error != "" {
		return fmt.Sprintf("%s (%s)", body.Error, resp.Status)
	}
	return resp.Status
}
