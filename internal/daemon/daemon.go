package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"github.com/execute-aditya/Deep-Trust/internal/analysis"
	"github.com/execute-aditya/Deep-Trust/internal/config"
	"github.com/execute-aditya/Deep-Trust/internal/logging"
	"github.com/execute-aditya/Deep-Trust/internal/notifications"
	"github.com/execute-aditya/Deep-Trust/internal/report"
)

// Daemon hosts the analysis API server and enforces single-instance execution.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *report.Store
	analyzer *analysis.Analyzer
	notifier notifications.Service
	api      *apiServer

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	DBPath       string
	LockFilePath string
	APIAddress   string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *report.Store, logger *slog.Logger, analyzer *analysis.Analyzer) (*Daemon, error) {
	if cfg == nil || store == nil || logger == nil || analyzer == nil {
		return nil, errors.New("daemon requires config, store, logger, and analyzer")
	}

	lockPath := filepath.Join(cfg.Paths.DataDir, "deeptrustd.lock")
	d := &Daemon{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		analyzer: analyzer,
		notifier: notifications.NewService(cfg),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}

	srv, err := newAPIServer(cfg, d, logger)
	if err != nil {
		return nil, err
	}
	d.api = srv
	return d, nil
}

// Start acquires the daemon lock and launches the API server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another deeptrust daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := d.api.start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return err
	}

	d.running.Store(true)
	d.logger.Info("deeptrust daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop shuts down the API server and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("deeptrust daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// APIAddress returns the bound API listen address, or empty before Start.
func (d *Daemon) APIAddress() string {
	if d.api == nil {
		return ""
	}
	return d.api.address()
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	return Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		DBPath:       d.cfg.DatabasePath(),
		LockFilePath: d.lockPath,
		APIAddress:   d.APIAddress(),
	}
}
