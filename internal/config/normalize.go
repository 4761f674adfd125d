package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAnalysis()
	c.normalizeServices()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	if c.Paths.APIToken == "" {
		if value, ok := os.LookupEnv("DEEPTRUST_API_TOKEN"); ok {
			c.Paths.APIToken = strings.TrimSpace(value)
		}
	}
	return nil
}

func (c *Config) normalizeAnalysis() {
	if c.Analysis.MaxUploadMiB <= 0 {
		c.Analysis.MaxUploadMiB = defaultMaxUploadMiB
	}
	if c.Analysis.DetectorTimeoutSeconds <= 0 {
		c.Analysis.DetectorTimeoutSeconds = defaultDetectorTimeoutSeconds
	}
}

func (c *Config) normalizeServices() {
	normalizeDetector(&c.Services.Classifier, defaultClassifierURL)
	normalizeDetector(&c.Services.Faces, defaultFacesURL)
}

func normalizeDetector(d *Detector, defaultURL string) {
	d.URL = strings.TrimRight(strings.TrimSpace(d.URL), "/")
	if d.URL == "" {
		d.URL = defaultURL
	}
	if d.TimeoutSeconds <= 0 {
		d.TimeoutSeconds = defaultServiceTimeoutSeconds
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimRight(strings.TrimSpace(c.Notifications.NtfyTopic), "/")
	if c.Notifications.RequestTimeoutSeconds <= 0 {
		c.Notifications.RequestTimeoutSeconds = defaultNtfyTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
