// Command deeptrustd runs the DeepTrust analysis daemon: it owns the
// report database, exposes the HTTP API, and holds the single-instance
// lock so only one daemon serves a data directory at a time.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/execute-aditya/Deep-Trust/internal/analysis"
	"github.com/execute-aditya/Deep-Trust/internal/config"
	"github.com/execute-aditya/Deep-Trust/internal/daemon"
	"github.com/execute-aditya/Deep-Trust/internal/logging"
	"github.com/execute-aditya/Deep-Trust/internal/report"
	"github.com/execute-aditya/Deep-Trust/internal/services/classifier"
	"github.com/execute-aditya/Deep-Trust/internal/services/faces"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("ensure directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	store, err := report.Open(cfg)
	if err != nil {
		logger.Error("open report store", logging.Error(err))
		return
	}

	analyzer := analysis.New(cfg, logger, serviceOptions(cfg)...)

	d, err := daemon.New(cfg, store, logger, analyzer)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		store.Close()
		return
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", logging.Error(err))
		return
	}

	<-ctx.Done()
	logger.Info("deeptrustd shutting down")
}

func serviceOptions(cfg *config.Config) []analysis.Option {
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
	return opts
}
