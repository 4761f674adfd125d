// Package spectral performs frequency-domain analysis of images. Generative
// upsampling leaves periodic artifacts and unnatural energy decay in the DCT
// spectrum; the scorer surfaces both as a bounded anomaly score.
//
// The transform always runs on a 256x256 channel-averaged grayscale
// resample, so scores are comparable across input resolutions.
package spectral
