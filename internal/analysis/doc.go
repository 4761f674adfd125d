// Package analysis orchestrates the media forensics pipeline.
//
// An Analyzer fans uploaded media out to the detectors (error level
// analysis, spectral analysis, EXIF provenance, and the optional external
// classifier and face-detection services), fuses their signals into a
// verdict, and assembles the response document returned by the API.
package analysis
