// Package logs provides file tailing helpers for the CLI.
//
// It reads log files with bounded memory usage, supports "last N lines"
// reads, and powers follow-mode updates for `deeptrust logs --follow`.
// Callers supply context deadlines so polling shuts down cleanly when the
// CLI exits.
package logs
