// Package turnstile verifies Cloudflare Turnstile challenge tokens.
package turnstile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kingluffyxx/portfolio/pkg/logging"
)

const (
	defaultEndpoint = "https://challenges.cloudflare.com/turnstile/v0/siteverify"
	defaultTimeout  = 10 * time.Second
)

// Client calls the Turnstile siteverify endpoint. With no secret configured
// the client is disabled and every submission passes.
type Client struct {
	httpClient *http.Client
	endpoint   string
	secret     string
	logger     *logging.Logger
}

// NewClient constructs a Turnstile client. An empty endpoint selects the
// Cloudflare production endpoint; an empty secret disables verification.
func NewClient(endpoint, secret string, logger *logging.Logger) *Client {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = defaultEndpoint
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		endpoint:   endpoint,
		secret:     secret,
		logger:     logger,
	}
}

// Enabled reports whether a secret is configured.
func (c *Client) Enabled() bool {
	return c != nil && strings.TrimSpace(c.secret) != ""
}

type verifyRequest struct {
	Secret   string `json:"secret"`
	Response string `json:"response"`
	RemoteIP string `json:"remoteip,omitempty"`
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks a challenge token. A disabled client accepts everything.
// Network or decode failures count as verification failure, with the error
// returned for logging.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if !c.Enabled() {
		c.logger.Warn("turnstile secret not configured, skipping verification")
		return true, nil
	}

	payload, err := json.Marshal(verifyRequest{
		Secret:   c.secret,
		Response: token,
		RemoteIP: remoteIP,
	})
	if err != nil {
		return false, fmt.Errorf("turnstile: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("turnstile: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("turnstile: http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("turnstile: read response: %w", err)
	}

	var result verifyResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return false, fmt.Errorf("turnstile: decode response: %w", err)
	}

	if !result.Success {
		c.logger.Error("turnstile verification failed", "error_codes", result.ErrorCodes)
	}
	return result.Success, nil
}
