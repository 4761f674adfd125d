// Package services holds shared plumbing for the external detector clients.
//
// Key responsibilities:
//   - Context helpers that stamp request correlation identifiers for logging
//     across the API handler, analyzer, and detector clients.
//
// The concrete clients live in subpackages (classifier, faces); they depend
// only on these helpers so observability stays uniform across detectors.
package services
