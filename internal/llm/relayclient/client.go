package relayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"career-backend/internal/llm"
)

// Client sends prompts through a running relay and unwraps the first text block.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a relay client with a default timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 90 * time.Second},
	}
}

type relayError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete implements llm.Completer.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := c.Raw(ctx, prompt)
	if err != nil {
		return "", err
	}
	return llm.FirstText(body)
}

// Raw returns the relay's response body unchanged.
func (c *Client) Raw(ctx context.Context, prompt string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return nil, err
	}
	endpoint := strings.TrimRight(c.BaseURL, "/") + "/api/claude"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("relay request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("relay read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(body))
		var re relayError
		if err := json.Unmarshal(body, &re); err == nil && re.Error.Message != "" {
			msg = re.Error.Message
		}
		return nil, fmt.Errorf("relay status %d: %s", resp.StatusCode, msg)
	}
	return body, nil
}

var _ llm.Completer = (*Client)(nil)
