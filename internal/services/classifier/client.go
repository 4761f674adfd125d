// Package classifier consumes the external deepfake classification service.
// The model runs out of process; this package only speaks its HTTP contract
// and degrades to an unavailable signal when the collaborator cannot answer.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultHTTPTimeout = 30 * time.Second

// Signal is the classifier verdict consumed by fusion. Available is false
// whenever the collaborator could not produce a result; scores are then
// zero and the label is "unknown".
type Signal struct {
	Available  bool     `json:"success"`
	Label      string   `json:"label"`
	Confidence float64  `json:"confidence"`
	RealScore  float64  `json:"real_score"`
	FakeScore  float64  `json:"fake_score"`
	Method     string   `json:"method"`
	Details    []string `json:"details,omitempty"`
	Err        string   `json:"error,omitempty"`
}

// Labels reported by the classifier.
const (
	LabelReal    = "real"
	LabelFake    = "fake"
	LabelUnknown = "unknown"
)

// Unavailable returns the placeholder signal for a collaborator failure.
func Unavailable(reason string) Signal {
	return Signal{Label: LabelUnknown, Method: "none", Err: reason}
}

// Service is the classifier contract the analyzer depends on.
type Service interface {
	Classify(ctx context.Context, data []byte) Signal
}

// Client calls a remote classifier over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes the classifier client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient constructs a classifier client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Classify submits media bytes for classification. Transport or decode
// failures return an unavailable signal, never an error.
func (c *Client) Classify(ctx context.Context, data []byte) Signal {
	if c == nil || c.baseURL == "" {
		return Unavailable("classifier not configured")
	}

	endpoint, err := url.JoinPath(c.baseURL, "/classify")
	if err != nil {
		return Unavailable(fmt.Sprintf("build url: %v", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return Unavailable(fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Unavailable(fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Unavailable(fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	var signal Signal
	if err := json.NewDecoder(resp.Body).Decode(&signal); err != nil {
		return Unavailable(fmt.Sprintf("decode response: %v", err))
	}
	if signal.Label == "" {
		signal.Label = LabelUnknown
	}
	signal.Available = true
	return signal
}
