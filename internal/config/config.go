package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/execute-aditya/Deep-Trust/internal/ela"
	"github.com/execute-aditya/Deep-Trust/internal/fusion"
	"github.com/execute-aditya/Deep-Trust/internal/spectral"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	DataDir  string `toml:"data_dir"`
	LogDir   string `toml:"log_dir"`
	APIBind  string `toml:"api_bind"`
	APIToken string `toml:"api_token"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Analysis contains limits applied to incoming media and detector runs.
type Analysis struct {
	MaxUploadMiB           int  `toml:"max_upload_mib"`
	DetectorTimeoutSeconds int  `toml:"detector_timeout_seconds"`
	KeepUploads            bool `toml:"keep_uploads"`
}

// Detector contains connection settings for an external detector service.
type Detector struct {
	Enabled        bool   `toml:"enabled"`
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Services groups the optional external detector services.
type Services struct {
	Classifier Detector `toml:"classifier"`
	Faces      Detector `toml:"faces"`
}

// Notifications contains push notification settings. Notifications go out
// through ntfy when a topic URL is configured.
type Notifications struct {
	NtfyTopic             string `toml:"ntfy_topic"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

// Calibration groups the per-detector scoring policies. Values left unset
// in the config file fall back to the production defaults.
type Calibration struct {
	ELA      ela.Calibration      `toml:"ela"`
	Spectral spectral.Calibration `toml:"spectral"`
	Fusion   fusion.Calibration   `toml:"fusion"`
}

// Config encapsulates all configuration values for DeepTrust.
//
// Configuration sections by subsystem:
//   - Paths: data/log directories and API bind address
//   - Logging: log format, level, and retention
//   - Analysis: upload limits and detector timeouts
//   - Services: external classifier and face-detection services
//   - Notifications: ntfy push notifications
//   - Calibration: detector scoring policies
type Config struct {
	Paths         Paths         `toml:"paths"`
	Logging       Logging       `toml:"logging"`
	Analysis      Analysis      `toml:"analysis"`
	Services      Services      `toml:"services"`
	Notifications Notifications `toml:"notifications"`
	Calibration   Calibration   `toml:"calibration"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/deeptrust/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/deeptrust/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("deeptrust.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the location of the report history database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "deeptrust.db")
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Analysis.MaxUploadMiB) << 20
}

// LogSettings implements logging.ConfigSource.
func (c *Config) LogSettings() (level, format, dir string) {
	return c.Logging.Level, c.Logging.Format, c.Paths.LogDir
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
