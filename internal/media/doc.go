// Package media handles decoding uploaded bytes into the pixel
// representations the detectors consume: interleaved RGB float planes,
// channel-averaged grayscale fields, and fixed-size resampled grids.
//
// EXIF inspection happens elsewhere, on the raw upload bytes, because any
// re-encode performed here discards embedded metadata.
package media
