package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateServices(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateCalibration(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if _, _, err := net.SplitHostPort(c.Paths.APIBind); err != nil {
		return fmt.Errorf("paths.api_bind must be host:port: %w", err)
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if err := ensurePositiveMap(map[string]int{
		"analysis.max_upload_mib":           c.Analysis.MaxUploadMiB,
		"analysis.detector_timeout_seconds": c.Analysis.DetectorTimeoutSeconds,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServices() error {
	if c.Services.Classifier.Enabled && strings.TrimSpace(c.Services.Classifier.URL) == "" {
		return errors.New("services.classifier.url must be set when services.classifier.enabled is true")
	}
	if c.Services.Faces.Enabled && strings.TrimSpace(c.Services.Faces.URL) == "" {
		return errors.New("services.faces.url must be set when services.faces.enabled is true")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	topic := strings.TrimSpace(c.Notifications.NtfyTopic)
	if topic == "" {
		return nil
	}
	if !strings.HasPrefix(topic, "http://") && !strings.HasPrefix(topic, "https://") {
		return errors.New("notifications.ntfy_topic must be a full http(s) URL")
	}
	return nil
}

func (c *Config) validateCalibration() error {
	if c.Calibration.ELA.Quality < 1 || c.Calibration.ELA.Quality > 100 {
		return errors.New("calibration.ela.quality must be between 1 and 100")
	}
	for key, value := range map[string]float64{
		"calibration.fusion.manipulated_threshold":  c.Calibration.Fusion.ManipulatedThreshold,
		"calibration.fusion.suspicious_threshold":   c.Calibration.Fusion.SuspiciousThreshold,
		"calibration.fusion.authentic_threshold":    c.Calibration.Fusion.AuthenticThreshold,
		"calibration.fusion.camera_override_factor": c.Calibration.Fusion.CameraOverrideFactor,
	} {
		if value < 0 || value > 1 {
			return fmt.Errorf("%s must be between 0 and 1", key)
		}
	}
	if c.Calibration.Fusion.SuspiciousThreshold > c.Calibration.Fusion.ManipulatedThreshold {
		return errors.New("calibration.fusion.suspicious_threshold must not exceed manipulated_threshold")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
