// Package faces consumes the external face-localization service. Face
// geometry only feeds the human-readable explanation; it never influences
// the numeric verdict.
package faces

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultHTTPTimeout = 15 * time.Second

// BBox is a face bounding box in source-image pixels.
type BBox struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Face is one localized face with detector confidence.
type Face struct {
	BBox       BBox    `json:"bbox"`
	Confidence float64 `json:"confidence"`
}

// Result is the face-localization summary for one upload.
type Result struct {
	FaceCount int    `json:"face_count"`
	Faces     []Face `json:"faces"`
	Method    string `json:"detection_method"`
}

// None is the placeholder result when no detector ran.
func None() Result {
	return Result{Faces: []Face{}, Method: "none"}
}

// Service is the face detector contract the analyzer depends on.
type Service interface {
	Detect(ctx context.Context, data []byte) Result
}

// Client calls a remote face detector over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes the face detector client.
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

// NewClient constructs a face detector client for the given base URL.
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

// Detect submits media bytes for face localization. Any failure returns the
// empty placeholder result.
func (c *Client) Detect(ctx context.Context, data []byte) Result {
	if c == nil || c.baseURL == "" {
		return None()
	}

	endpoint, err := url.JoinPath(c.baseURL, "/detect")
	if err != nil {
		return None()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return None()
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return None()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return None()
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return None()
	}
	if result.Faces == nil {
		result.Faces = []Face{}
	}
	if result.Method == "" {
		result.Method = "remote"
	}
	result.FaceCount = len(result.Faces)
	return result
}

// AverageConfidence returns the mean detector confidence across faces.
func (r Result) AverageConfidence() float64 {
	if len(r.Faces) == 0 {
		return 0
	}
	sum := 0.0
	for _, f := range r.Faces {
		sum += f.Confidence
	}
	return sum / float64(len(r.Faces))
}
