// Package vision is the thin HTTP client for the external frame-to-signals
// extraction service. All computer-vision work happens remotely; this client
// only moves frames out and behavioral signals back.
package vision

// #region imports
import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/officemates/antigravity/internal/signals"
)

// #endregion

// #region config

// Config holds the extraction service endpoint settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig points at a local extractor.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8001",
		Timeout: 5 * time.Second,
	}
}

// #endregion config

// #region client

// extractRequest is the wire shape the extractor accepts: one camera frame,
// base64-encoded.
type extractRequest struct {
	UserID string `json:"user_id"`
	Frame  string `json:"frame"`
}

// Client calls the extraction service. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client with the given configuration.
func NewClient(config Config) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	return &Client{
		baseURL: config.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// ExtractSignals sends one raw frame and returns the extracted behavioral
// signals. Missing fields in the response default leniently; transport and
// non-2xx failures are returned to the caller to decide on.
func (c *Client) ExtractSignals(ctx context.Context, userID string, frame []byte) (signals.Behavioral, error) {
	body, err := json.Marshal(extractRequest{
		UserID: userID,
		Frame:  base64.StdEncoding.EncodeToString(frame),
	})
	if err != nil {
		return signals.Behavioral{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/vision/extract", bytes.NewReader(body))
	if err != nil {
		return signals.Behavioral{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return signals.Behavioral{}, fmt.Errorf("call extractor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return signals.Behavioral{}, fmt.Errorf("extractor returned %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return signals.Behavioral{}, fmt.Errorf("read response: %w", err)
	}

	return signals.Decode(data), nil
}

// #endregion client
