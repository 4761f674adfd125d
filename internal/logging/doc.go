// Package logging assembles the structured slog loggers used across the
// DeepTrust services.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attr helpers so detector and daemon code emit log
// lines with the same shape. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
package logging
