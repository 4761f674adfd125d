package spectral_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/execute-aditya/Deep-Trust/internal/spectral"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func checkerboard(w, h, period int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if (x/period+y/period)%2 == 0 {
				v = 255
			}
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8((x * 255) / w)
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func TestMagnitudeHasFixedSize(t *testing.T) {
	img := gradient(513, 47)
	mag := spectral.ComputeMagnitude(img)
	if mag.Size != spectral.TransformSize {
		t.Fatalf("expected size %d, got %d", spectral.TransformSize, mag.Size)
	}
	if len(mag.Pix) != spectral.TransformSize*spectral.TransformSize {
		t.Fatalf("unexpected magnitude length %d", len(mag.Pix))
	}
	for i, v := range mag.Pix {
		if v < 0 || math.IsNaN(v) {
			t.Fatalf("magnitude %d invalid: %v", i, v)
		}
	}
}

func TestResultSeriesShapes(t *testing.T) {
	scorer := spectral.NewScorer(spectral.DefaultCalibration())
	result := scorer.Analyze(encodePNG(t, gradient(300, 200)))
	if result.Err != "" {
		t.Fatalf("unexpected degraded result: %s", result.Err)
	}
	if len(result.Waveform) != spectral.WaveformPoints {
		t.Fatalf("expected %d waveform points, got %d", spectral.WaveformPoints, len(result.Waveform))
	}
	if len(result.Correlation) != spectral.CorrelationPoints {
		t.Fatalf("expected %d correlation points, got %d", spectral.CorrelationPoints, len(result.Correlation))
	}

	maxWave := 0.0
	for _, v := range result.Waveform {
		if v < 0 || v > 1 {
			t.Fatalf("waveform value out of range: %v", v)
		}
		if v > maxWave {
			maxWave = v
		}
	}
	if math.Abs(maxWave-1.0) > 1e-9 {
		t.Fatalf("waveform max should be 1 for non-zero energy, got %v", maxWave)
	}

	maxA, maxB := 0.0, 0.0
	for i, p := range result.Correlation {
		if p.Index != i {
			t.Fatalf("correlation point %d has index %d", i, p.Index)
		}
		if p.ChannelA < 0 || p.ChannelA > 1 || p.ChannelB < 0 || p.ChannelB > 1 {
			t.Fatalf("correlation point %d out of range: %+v", i, p)
		}
		maxA = math.Max(maxA, p.ChannelA)
		maxB = math.Max(maxB, p.ChannelB)
	}
	if math.Abs(maxA-1.0) > 1e-9 || math.Abs(maxB-1.0) > 1e-9 {
		t.Fatalf("correlation channels should normalize to 1, got %v and %v", maxA, maxB)
	}
}

func TestAllBlackImageDoesNotDivideByZero(t *testing.T) {
	scorer := spectral.NewScorer(spectral.DefaultCalibration())
	result := scorer.Analyze(encodePNG(t, image.NewRGBA(image.Rect(0, 0, 128, 128))))
	if result.Err != "" {
		t.Fatalf("unexpected degraded result: %s", result.Err)
	}
	if math.IsNaN(result.SpectralAnomaly) || math.IsInf(result.SpectralAnomaly, 0) {
		t.Fatalf("anomaly not finite: %v", result.SpectralAnomaly)
	}
	for _, v := range result.Waveform {
		if math.IsNaN(v) {
			t.Fatal("waveform contains NaN")
		}
	}
}

func TestCheckerboardScoresHigherThanGradient(t *testing.T) {
	scorer := spectral.NewScorer(spectral.DefaultCalibration())
	periodic := scorer.Analyze(encodePNG(t, checkerboard(256, 256, 2)))
	smooth := scorer.Analyze(encodePNG(t, gradient(256, 256)))
	if periodic.Err != "" || smooth.Err != "" {
		t.Fatalf("unexpected degraded results: %q %q", periodic.Err, smooth.Err)
	}
	if periodic.SpectralAnomaly <= smooth.SpectralAnomaly {
		t.Fatalf("periodic pattern should score higher: %v vs %v",
			periodic.SpectralAnomaly, smooth.SpectralAnomaly)
	}
}

func TestScoreIdempotent(t *testing.T) {
	data := encodePNG(t, checkerboard(200, 150, 5))
	scorer := spectral.NewScorer(spectral.DefaultCalibration())
	first := scorer.Analyze(data)
	second := scorer.Analyze(data)
	if first.SpectralAnomaly != second.SpectralAnomaly ||
		first.PeriodicityScore != second.PeriodicityScore ||
		first.HighFreqRatio != second.HighFreqRatio {
		t.Fatalf("repeated analysis diverged: %+v vs %+v", first, second)
	}
}

func TestDegradedResultKeepsShape(t *testing.T) {
	result := spectral.NewScorer(spectral.DefaultCalibration()).Analyze([]byte("junk"))
	if result.Err == "" {
		t.Fatal("expected degraded result")
	}
	if len(result.Waveform) != spectral.WaveformPoints || len(result.Correlation) != spectral.CorrelationPoints {
		t.Fatal("degraded result lost fixed series shapes")
	}
	if result.SpectralAnomaly != 0 {
		t.Fatalf("degraded anomaly must be zero, got %v", result.SpectralAnomaly)
	}
}

func TestAnalyzeAudioShapes(t *testing.T) {
	data := make([]byte, 4096)
	for i := range data {
		// Mix of two byte-level periodicities.
		data[i] = byte(128 + 100*math.Sin(float64(i)/7.0) + 20*math.Sin(float64(i)/3.0))
	}
	result := spectral.AnalyzeAudio(data)
	if result.Err != "" {
		t.Fatalf("unexpected degraded result: %s", result.Err)
	}
	if len(result.Waveform) != spectral.WaveformPoints || len(result.Correlation) != spectral.CorrelationPoints {
		t.Fatal("audio result lost fixed series shapes")
	}
	if result.SpectralAnomaly < 0 || result.SpectralAnomaly > 1 {
		t.Fatalf("anomaly out of range: %v", result.SpectralAnomaly)
	}
	for _, p := range result.Correlation {
		if p.ChannelA != 0.5 {
			t.Fatalf("audio correlation visual channel should be neutral 0.5, got %v", p.ChannelA)
		}
	}
}

func TestAnalyzeAudioEmptyDegrades(t *testing.T) {
	result := spectral.AnalyzeAudio(nil)
	if result.Err == "" {
		t.Fatal("expected degraded result for empty audio")
	}
	if len(result.Waveform) != spectral.WaveformPoints {
		t.Fatal("degraded audio result lost waveform shape")
	}
}
