package spectral

import (
	"image"
	"math"
	"sync"

	"github.com/execute-aditya/Deep-Trust/internal/media"
)

// TransformSize is the fixed side length of the analysis grid.
const TransformSize = 256

// Magnitude is the absolute value of the orthonormal 2D DCT-II of a
// normalized grayscale image. Always TransformSize x TransformSize.
type Magnitude struct {
	Size int
	Pix  []float64
}

// At returns the magnitude at frequency coordinate (x, y).
func (m *Magnitude) At(x, y int) float64 {
	return m.Pix[y*m.Size+x]
}

// ComputeMagnitude converts the image to channel-averaged grayscale,
// resamples it to the fixed grid, and returns the DCT magnitude.
func ComputeMagnitude(img image.Image) *Magnitude {
	gray := media.ResampleGray(media.GrayAverage(media.ToRGB(img)), TransformSize)
	coeffs := dct2D(gray.Pix, TransformSize)
	for i, v := range coeffs {
		coeffs[i] = math.Abs(v)
	}
	return &Magnitude{Size: TransformSize, Pix: coeffs}
}

var dctBasis struct {
	once  sync.Once
	cos   []float64 // cos[k*N+n] = cos(pi*(2n+1)*k / (2N))
	alpha []float64
}

func dctTables() ([]float64, []float64) {
	dctBasis.once.Do(func() {
		n := TransformSize
		dctBasis.cos = make([]float64, n*n)
		dctBasis.alpha = make([]float64, n)
		for k := 0; k < n; k++ {
			for i := 0; i < n; i++ {
				dctBasis.cos[k*n+i] = math.Cos(math.Pi * float64(2*i+1) * float64(k) / float64(2*n))
			}
			dctBasis.alpha[k] = math.Sqrt(2.0 / float64(n))
		}
		dctBasis.alpha[0] = math.Sqrt(1.0 / float64(n))
	})
	return dctBasis.cos, dctBasis.alpha
}

// dct2D applies the separable orthonormal DCT-II along rows, then columns.
func dct2D(pix []float64, n int) []float64 {
	cos, alpha := dctTables()

	rows := make([]float64, n*n)
	for y := 0; y < n; y++ {
		in := pix[y*n : (y+1)*n]
		out := rows[y*n : (y+1)*n]
		dct1D(in, out, cos, alpha, n)
	}

	result := make([]float64, n*n)
	col := make([]float64, n)
	colOut := make([]float64, n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			col[y] = rows[y*n+x]
		}
		dct1D(col, colOut, cos, alpha, n)
		for y := 0; y < n; y++ {
			result[y*n+x] = colOut[y]
		}
	}
	return result
}

func dct1D(in, out, cos, alpha []float64, n int) {
	for k := 0; k < n; k++ {
		sum := 0.0
		base := k * n
		for i := 0; i < n; i++ {
			sum += in[i] * cos[base+i]
		}
		out[k] = alpha[k] * sum
	}
}
