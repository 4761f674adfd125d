package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/execute-aditya/Deep-Trust/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.APIBind = "127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAPIToken sets the API bearer token on the test config.
func WithAPIToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.APIToken = token
	}
}

// WithClassifier enables the external classifier service at the given URL.
func WithClassifier(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Services.Classifier.Enabled = true
		b.cfg.Services.Classifier.URL = url
	}
}

// WithFaces enables the external face-detection service at the given URL.
func WithFaces(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Services.Faces.Enabled = true
		b.cfg.Services.Faces.URL = url
	}
}

// WithKeepUploads makes the daemon archive raw uploads under the data dir.
func WithKeepUploads() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Analysis.KeepUploads = true
	}
}

// WithNtfyTopic points notifications at the given ntfy topic URL.
func WithNtfyTopic(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = url
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
