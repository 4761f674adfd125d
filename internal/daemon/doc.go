// Package daemon coordinates the long-running DeepTrust process.
//
// It wires configuration, report storage, and the analysis pipeline into a
// single lifecycle with flock-based locking to prevent multiple instances,
// and exposes the HTTP API (upload analysis, report history, health, and
// Prometheus metrics).
//
// Keep orchestration logic here: detector internals live in their own
// packages while the daemon focuses on startup, shutdown, and transport.
package daemon
