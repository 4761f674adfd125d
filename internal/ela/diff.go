package ela

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/execute-aditya/Deep-Trust/internal/media"
)

// ErrorField is the per-pixel-channel absolute difference between an image
// and its lossy round-trip. Samples are ordered R, G, B per pixel, row
// major. Immutable once computed.
type ErrorField struct {
	Width   int
	Height  int
	Samples []float64
	Max     float64
}

// ComputeErrorField re-encodes img as JPEG at the given quality, decodes the
// result, and returns the absolute per-channel pixel difference.
func ComputeErrorField(img image.Image, quality int) (*ErrorField, error) {
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("ela: quality %d out of range 1-100", quality)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("ela: re-encode: %w", err)
	}
	resaved, err := jpeg.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("ela: decode round-trip: %w", err)
	}

	original := media.ToRGB(img)
	roundTrip := media.ToRGB(resaved)
	if original.Width != roundTrip.Width || original.Height != roundTrip.Height {
		return nil, fmt.Errorf("ela: round-trip size mismatch %dx%d vs %dx%d",
			original.Width, original.Height, roundTrip.Width, roundTrip.Height)
	}

	samples := make([]float64, len(original.Pix))
	maxVal := 0.0
	for i := range samples {
		d := original.Pix[i] - roundTrip.Pix[i]
		if d < 0 {
			d = -d
		}
		samples[i] = d
		if d > maxVal {
			maxVal = d
		}
	}

	return &ErrorField{
		Width:   original.Width,
		Height:  original.Height,
		Samples: samples,
		Max:     maxVal,
	}, nil
}

// grayscale collapses the field to one value per pixel: the channel mean of
// the visibility-scaled error, quantized to 8 bits the way the rendered ELA
// image would be.
func (f *ErrorField) grayscale() media.Gray {
	scale := 1.0
	if f.Max > 0 {
		scale = 255.0 / f.Max
	}
	n := f.Width * f.Height
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		base := i * 3
		sum := 0.0
		for c := 0; c < 3; c++ {
			sum += float64(uint8(f.Samples[base+c] * scale))
		}
		out[i] = sum / 3.0
	}
	return media.Gray{Width: f.Width, Height: f.Height, Pix: out}
}
