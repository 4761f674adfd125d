package spectral

import (
	"math"
	"math/cmplx"
)

// audioWindow caps how much of the audio byte stream is analyzed.
const audioWindow = 64 * 1024

// AnalyzeAudio is the low-fidelity fallback for audio uploads: a byte-level
// FFT over the head of the stream, shaped into the same fixed waveform and
// correlation series the image path produces. The sample window is truncated
// to a power of two for the radix-2 transform.
func AnalyzeAudio(data []byte) Result {
	if len(data) > audioWindow {
		data = data[:audioWindow]
	}
	if len(data) == 0 {
		return Degraded("empty audio data")
	}

	n := largestPowerOfTwo(len(data))
	samples := make([]complex128, n)
	for i := 0; i < n; i++ {
		samples[i] = complex(float64(data[i]), 0)
	}
	fft(samples)

	magnitude := make([]float64, n/2)
	for i := range magnitude {
		magnitude[i] = cmplx.Abs(samples[i])
	}
	if len(magnitude) < 4 {
		return Degraded("audio sample too short for spectral analysis")
	}

	maxMag := 0.0
	for _, v := range magnitude {
		if v > maxMag {
			maxMag = v
		}
	}
	if maxMag == 0 {
		maxMag = 1.0
	}

	waveform := make([]float64, WaveformPoints)
	step := len(magnitude) / WaveformPoints
	if step < 1 {
		step = 1
	}
	for i := 0; i < WaveformPoints; i++ {
		idx := i * step
		if idx >= len(magnitude) {
			break
		}
		waveform[i] = magnitude[idx] / maxMag
	}

	low := sliceMean(magnitude[:len(magnitude)/4])
	high := sliceMean(magnitude[len(magnitude)/2:])
	anomaly := math.Min(1.0, high/(low+1e-8))

	correlation := make([]CorrelationPoint, CorrelationPoints)
	for t := 0; t < CorrelationPoints; t++ {
		audio := 0.0
		if t*2 < len(waveform) {
			audio = waveform[t*2]
		}
		correlation[t] = CorrelationPoint{Index: t, ChannelA: 0.5, ChannelB: audio}
	}

	return Result{
		SpectralAnomaly: anomaly,
		Waveform:        waveform,
		Correlation:     correlation,
	}
}

func sliceMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func largestPowerOfTwo(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}

// fft performs an in-place iterative radix-2 Cooley-Tukey transform.
// len(x) must be a power of two.
func fft(x []complex128) {
	n := len(x)
	if n <= 1 {
		return
	}

	// Bit-reversal permutation.
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}

	for length := 2; length <= n; length <<= 1 {
		angle := -2 * math.Pi / float64(length)
		wl := cmplx.Rect(1, angle)
		for start := 0; start < n; start += length {
			w := complex(1, 0)
			for k := 0; k < length/2; k++ {
				u := x[start+k]
				v := x[start+k+length/2] * w
				x[start+k] = u + v
				x[start+k+length/2] = u - v
				w *= wl
			}
		}
	}
}
