// Package report persists analysis history backed by SQLite.
//
// Every completed analysis is stored as a Record carrying the verdict,
// the detector scores, and the full response document so past analyses
// can be listed, re-fetched, and pruned from the CLI and the HTTP API.
package report
