package main

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/execute-aditya/Deep-Trust/internal/analysis"
	"github.com/execute-aditya/Deep-Trust/internal/config"
	"github.com/execute-aditya/Deep-Trust/internal/logging"
	"github.com/execute-aditya/Deep-Trust/internal/report"
	"github.com/execute-aditya/Deep-Trust/internal/services/classifier"
	"github.com/execute-aditya/Deep-Trust/internal/services/faces"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) openStore() (*report.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return report.Open(cfg)
}

func (c *commandContext) newAnalyzer() (*analysis.Analyzer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	var opts []analysis.Option
	if cfg.Services.Classifier.Enabled {
		opts = append(opts, analysis.WithClassifier(classifier.NewClient(
			cfg.Services.Classifier.URL,
			classifier.WithTimeout(time.Duration(cfg.Services.Classifier.TimeoutSeconds)*time.Second),
		)))
	}
	if cfg.Services.Faces.Enabled {
		opts = append(opts, analysis.WithFaces(faces.NewClient(
			cfg.Services.Faces.URL,
			faces.WithTimeout(time.Duration(cfg.Services.Faces.TimeoutSeconds)*time.Second),
		)))
	}

	return analysis.New(cfg, logging.NewNop(), opts...), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
