package media

import (
	"image"
	"image/draw"
)

// Pixels is a dense interleaved RGB plane with float64 samples in [0,255].
type Pixels struct {
	Width  int
	Height int
	// Pix holds Width*Height*3 samples ordered R, G, B per pixel, row major.
	Pix []float64
}

// ToRGB flattens an image into interleaved RGB float samples. Alpha is
// dropped; non-RGBA source images are converted first.
func ToRGB(img image.Image) Pixels {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	pix := make([]float64, w*h*3)
	for y := 0; y < h; y++ {
		rowStart := rgba.PixOffset(rgba.Rect.Min.X, rgba.Rect.Min.Y+y)
		for x := 0; x < w; x++ {
			src := rowStart + x*4
			dst := (y*w + x) * 3
			pix[dst] = float64(rgba.Pix[src])
			pix[dst+1] = float64(rgba.Pix[src+1])
			pix[dst+2] = float64(rgba.Pix[src+2])
		}
	}
	return Pixels{Width: w, Height: h, Pix: pix}
}

// Gray is a single-channel float64 field in [0,255].
type Gray struct {
	Width  int
	Height int
	Pix    []float64
}

// At returns the sample at (x, y).
func (g Gray) At(x, y int) float64 {
	return g.Pix[y*g.Width+x]
}

// GrayAverage converts RGB pixels to grayscale by channel averaging.
// This is deliberately not a luminance weighting: the frequency detectors
// are calibrated against plain channel means.
func GrayAverage(p Pixels) Gray {
	n := p.Width * p.Height
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		base := i * 3
		out[i] = (p.Pix[base] + p.Pix[base+1] + p.Pix[base+2]) / 3.0
	}
	return Gray{Width: p.Width, Height: p.Height, Pix: out}
}
