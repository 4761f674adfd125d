// Package main hosts the DeepTrust CLI entrypoint and command graph.
//
// The Cobra-based command tree runs media analyses, browses the report
// history, and scaffolds configuration. It centralizes configuration
// resolution and detector wiring so subcommands can focus on user
// experience instead of plumbing.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
