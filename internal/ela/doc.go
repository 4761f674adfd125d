// Package ela implements Error Level Analysis, a forensic technique that
// re-encodes an image through a lossy JPEG pass and inspects the pixel-wise
// error between original and round-trip. Locally edited regions recompress
// differently from the rest of the image and stand out in the error field.
package ela
