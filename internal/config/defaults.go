package config

import (
	"github.com/execute-aditya/Deep-Trust/internal/ela"
	"github.com/execute-aditya/Deep-Trust/internal/fusion"
	"github.com/execute-aditya/Deep-Trust/internal/spectral"
)

const (
	defaultDataDir                = "~/.local/share/deeptrust"
	defaultLogDir                 = "~/.local/share/deeptrust/logs"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultLogRetentionDays       = 60
	defaultAPIBind                = "127.0.0.1:7833"
	defaultMaxUploadMiB           = 100
	defaultDetectorTimeoutSeconds = 60
	defaultClassifierURL          = "http://127.0.0.1:8500"
	defaultFacesURL               = "http://127.0.0.1:8501"
	defaultServiceTimeoutSeconds  = 30
	defaultNtfyTimeoutSeconds     = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
		Analysis: Analysis{
			MaxUploadMiB:           defaultMaxUploadMiB,
			DetectorTimeoutSeconds: defaultDetectorTimeoutSeconds,
		},
		Services: Services{
			Classifier: Detector{
				URL:            defaultClassifierURL,
				TimeoutSeconds: defaultServiceTimeoutSeconds,
			},
			Faces: Detector{
				URL:            defaultFacesURL,
				TimeoutSeconds: defaultServiceTimeoutSeconds,
			},
		},
		Notifications: Notifications{
			RequestTimeoutSeconds: defaultNtfyTimeoutSeconds,
		},
		Calibration: Calibration{
			ELA:      ela.DefaultCalibration(),
			Spectral: spectral.DefaultCalibration(),
			Fusion:   fusion.DefaultCalibration(),
		},
	}
}
