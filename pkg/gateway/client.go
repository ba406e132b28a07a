// Package gateway is the thin HTTP client wrapping the backend
// orchestrator service. It is the only component in the shell that
// performs network I/O.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/hardcoreai/shell/errors"
	"github.com/hardcoreai/shell/logging"
	"github.com/hardcoreai/shell/pkg/models"
	"github.com/sirupsen/logrus"
)

// DesktopKeyHeader marks requests as coming from the trusted local
// desktop client. Not a secret, purely a routing marker for the
// backend's local-only auth bypass.
const DesktopKeyHeader = "X-Desktop-Key"

const desktopKey = "desktop_local_bypass_hardcore_ai"

// Client calls the backend HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logrus.Entry
}

// NewClient creates a client for the backend at baseURL. No request
// timeout is set: command lifetimes are governed by the caller's
// context, and a hung backend call deliberately hangs its command.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		logger:     logging.NewLogger("gateway"),
	}
}

// Detect enumerates connected hardware devices.
func (c *Client) Detect(ctx context.Context) (*models.DetectResponse, error) {
	var resp models.DetectResponse
	if err := c.doJSON(ctx, http.MethodGet, "/detect", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Chat sends a conversational generation request.
func (c *Client) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	var resp models.ChatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Execute sends a structured peripheral-driven generation request.
func (c *Client) Execute(ctx context.Context, req *models.ExecuteRequest) (*models.ExecuteResponse, error) {
	var resp models.ExecuteResponse
	if err := c.doJSON(ctx, http.MethodPost, "/execute", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Build compiles the firmware project on the backend.
func (c *Client) Build(ctx context.Context, req *models.BuildRequest) (*models.BuildResponse, error) {
	var resp models.BuildResponse
	if err := c.doJSON(ctx, http.MethodPost, "/build", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Flash builds and writes firmware to the connected device.
func (c *Client) Flash(ctx context.Context, req *models.FlashRequest) (*models.FlashResponse, error) {
	var resp models.FlashResponse
	if err := c.doJSON(ctx, http.MethodPost, "/flash", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SaveAPIKey syncs the user's API key to the backend. Callers treat
// failure as non-fatal; local persistence is authoritative.
func (c *Client) SaveAPIKey(ctx context.Context, key string) error {
	var resp models.APIKeyResponse
	return c.doJSON(ctx, http.MethodPost, "/settings/api-key", &models.APIKeyRequest{APIKey: key}, &resp)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to encode request body").
				WithDetail("endpoint", path)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create request").
			WithDetail("endpoint", path)
	}
	req.Header.Set(DesktopKeyHeader, desktopKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.WithFields(logrus.Fields{"method": method, "endpoint": path}).Debug("backend request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.BackendUnreachable(path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.BackendStatus(path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, errors.ErrCodeBackendResponse, "failed to decode backend response").
				WithDetail("endpoint", path)
		}
	}
	return nil
}
