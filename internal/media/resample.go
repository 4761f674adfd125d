package media

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ResampleGray quantizes a grayscale field to 8 bits and rescales it to
// size x size using Catmull-Rom interpolation. Quantizing first keeps the
// result stable across source bit depths.
func ResampleGray(g Gray, size int) Gray {
	src := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			src.SetGray(x, y, color.Gray{Y: clampByte(g.At(x, y))})
		}
	}

	dst := image.NewGray(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out := make([]float64, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			out[y*size+x] = float64(dst.GrayAt(x, y).Y)
		}
	}
	return Gray{Width: size, Height: size, Pix: out}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
