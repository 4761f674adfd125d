package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/execute-aditya/Deep-Trust/internal/config"
)

const userAgent = "DeepTrust/2.0"

// Service pushes analysis alerts to the operator.
type Service interface {
	NotifyManipulationDetected(ctx context.Context, filename, verdict string, confidence float64) error
	NotifyAnalysisFailed(ctx context.Context, filename string, err error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyManipulationDetected(ctx context.Context, filename, verdict string, confidence float64) error {
	filename = strings.TrimSpace(filename)
	data := payload{
		title:    "DeepTrust - Manipulation Detected",
		message:  fmt.Sprintf("%s flagged as %s (%.1f%% confidence)", filename, verdict, confidence*100),
		tags:     []string{"deeptrust", "verdict", verdict},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyAnalysisFailed(ctx context.Context, filename string, err error) error {
	filename = strings.TrimSpace(filename)
	message := fmt.Sprintf("Analysis of %s failed", filename)
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}
	data := payload{
		title:   "DeepTrust - Analysis Failed",
		message: message,
		tags:    []string{"deeptrust", "error"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "DeepTrust - Test",
		message:  "Notification system test",
		tags:     []string{"deeptrust", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyManipulationDetected(context.Context, string, string, float64) error {
	return nil
}
func (noopService) NotifyAnalysisFailed(context.Context, string, error) error { return nil }
func (noopService) TestNotification(context.Context) error                    { return nil }
