package spectral

import (
	"math"

	"github.com/execute-aditya/Deep-Trust/internal/media"
)

// Output series lengths are fixed regardless of input.
const (
	WaveformPoints    = 60
	CorrelationPoints = 30
)

// Autocorrelation peaks are searched in this lag window; lags below the
// floor are trivial self-correlation.
const (
	lagFloor   = 5
	lagCeiling = 50
)

// CorrelationPoint pairs the horizontal and vertical spectral profiles at
// one sample index. JSON names match the visualization contract.
type CorrelationPoint struct {
	Index    int     `json:"time"`
	ChannelA float64 `json:"visual"`
	ChannelB float64 `json:"audio"`
}

// Result is the complete output of one spectral pass. Degraded results keep
// the fixed series shapes with zeroed values.
type Result struct {
	SpectralAnomaly  float64            `json:"spectral_anomaly"`
	LowEnergy        float64            `json:"low_freq_energy"`
	MidEnergy        float64            `json:"mid_freq_energy"`
	HighEnergy       float64            `json:"high_freq_energy"`
	HighFreqRatio    float64            `json:"high_freq_ratio"`
	PeriodicityScore float64            `json:"periodicity_score"`
	Waveform         []float64          `json:"waveform_data"`
	Correlation      []CorrelationPoint `json:"correlation_data"`
	Err              string             `json:"error,omitempty"`
}

// Degraded returns a zeroed but well-formed result carrying an error
// description.
func Degraded(reason string) Result {
	correlation := make([]CorrelationPoint, CorrelationPoints)
	for t := range correlation {
		correlation[t] = CorrelationPoint{Index: t, ChannelA: 0.5, ChannelB: 0.5}
	}
	return Result{
		Waveform:    make([]float64, WaveformPoints),
		Correlation: correlation,
		Err:         reason,
	}
}

// Scorer derives anomaly scores from DCT magnitude fields.
type Scorer struct {
	cal Calibration
}

// NewScorer constructs a scorer with the given calibration.
func NewScorer(cal Calibration) *Scorer {
	return &Scorer{cal: cal}
}

// Analyze decodes image bytes and runs the full spectral pipeline. Failures
// degrade to a zeroed result; this method never returns an error.
func (s *Scorer) Analyze(data []byte) Result {
	img, _, err := media.Decode(data)
	if err != nil {
		return Degraded(err.Error())
	}
	return s.ScoreMagnitude(ComputeMagnitude(img))
}

// ScoreMagnitude computes band energies, periodicity, and the derived
// series from a transform magnitude.
func (s *Scorer) ScoreMagnitude(mag *Magnitude) Result {
	if mag == nil || len(mag.Pix) == 0 {
		return Degraded("empty transform")
	}
	n := mag.Size

	// Band partition is by index range, not radius: low holds the DC-near
	// quarter block, mid the next diagonal quarter block, high the
	// bottom-right half block.
	low := blockMean(mag, 0, 0, n/4, n/4)
	mid := blockMean(mag, n/4, n/4, n/2, n/2)
	high := blockMean(mag, n/2, n/2, n, n)

	total := low + mid + high
	if total == 0 {
		total = 1.0
	}
	ratio := high / total

	expected := low * s.cal.ExpectedDecay
	decay := math.Max(0, high-expected) / (low + 1e-8)

	periodicity := s.periodicity(mag)

	score := math.Min(1.0,
		ratio*s.cal.RatioWeight+
			math.Min(1.0, decay*s.cal.DecayScale)*s.cal.DecayWeight+
			periodicity*s.cal.PeriodicityWeight)

	return Result{
		SpectralAnomaly:  score,
		LowEnergy:        low,
		MidEnergy:        mid,
		HighEnergy:       high,
		HighFreqRatio:    ratio,
		PeriodicityScore: periodicity,
		Waveform:         radialWaveform(mag),
		Correlation:      correlationSeries(mag),
	}
}

// periodicity mean-centers the row and column mean profiles, autocorrelates
// each, and reports the strongest normalized peak in the lag window.
func (s *Scorer) periodicity(mag *Magnitude) float64 {
	n := mag.Size
	colProfile := make([]float64, n) // mean over rows, one value per column
	rowProfile := make([]float64, n) // mean over columns, one value per row
	for y := 0; y < n; y++ {
		rowBase := y * n
		for x := 0; x < n; x++ {
			v := mag.Pix[rowBase+x]
			colProfile[x] += v
			rowProfile[y] += v
		}
	}
	for i := 0; i < n; i++ {
		colProfile[i] /= float64(n)
		rowProfile[i] /= float64(n)
	}

	return math.Max(autocorrPeak(colProfile), autocorrPeak(rowProfile))
}

func autocorrPeak(profile []float64) float64 {
	if len(profile) <= lagCeiling {
		return 0
	}
	mean := 0.0
	for _, v := range profile {
		mean += v
	}
	mean /= float64(len(profile))

	centered := make([]float64, len(profile))
	for i, v := range profile {
		centered[i] = v - mean
	}

	zeroLag := dotLag(centered, 0)
	if zeroLag <= 0 {
		return 0
	}

	peak := 0.0
	for lag := lagFloor; lag < lagCeiling; lag++ {
		v := math.Abs(dotLag(centered, lag) / zeroLag)
		if v > peak {
			peak = v
		}
	}
	return peak
}

func dotLag(x []float64, lag int) float64 {
	sum := 0.0
	for i := 0; i+lag < len(x); i++ {
		sum += x[i] * x[i+lag]
	}
	return sum
}

// radialWaveform bins magnitude by distance from the field center into the
// fixed number of concentric bands, then normalizes by the series max.
func radialWaveform(mag *Magnitude) []float64 {
	n := mag.Size
	centerY, centerX := n/2, n/2
	maxRadius := float64(min(centerY, centerX))
	bandWidth := maxRadius / WaveformPoints

	sums := make([]float64, WaveformPoints)
	counts := make([]int, WaveformPoints)
	for y := 0; y < n; y++ {
		dy := float64(y - centerY)
		for x := 0; x < n; x++ {
			dx := float64(x - centerX)
			dist := math.Sqrt(dy*dy + dx*dx)
			bin := int(dist / bandWidth)
			if bin >= 0 && bin < WaveformPoints {
				sums[bin] += mag.Pix[y*n+x]
				counts[bin]++
			}
		}
	}

	waveform := make([]float64, WaveformPoints)
	maxVal := 0.0
	for i := range waveform {
		if counts[i] > 0 {
			waveform[i] = sums[i] / float64(counts[i])
		}
		if waveform[i] > maxVal {
			maxVal = waveform[i]
		}
	}
	if maxVal == 0 {
		maxVal = 1.0
	}
	for i := range waveform {
		waveform[i] /= maxVal
	}
	return waveform
}

// correlationSeries samples row and column mean magnitudes at the fixed
// number of evenly spaced indices, normalizing each channel independently.
func correlationSeries(mag *Magnitude) []CorrelationPoint {
	n := mag.Size
	step := n / CorrelationPoints

	points := make([]CorrelationPoint, CorrelationPoints)
	maxA, maxB := 0.0, 0.0
	for t := 0; t < CorrelationPoints; t++ {
		rowIdx := min(t*step, n-1)
		colIdx := min(t*step, n-1)

		rowSum, colSum := 0.0, 0.0
		for i := 0; i < n; i++ {
			rowSum += mag.Pix[rowIdx*n+i]
			colSum += mag.Pix[i*n+colIdx]
		}
		a := rowSum / float64(n)
		b := colSum / float64(n)
		points[t] = CorrelationPoint{Index: t, ChannelA: a, ChannelB: b}
		if a > maxA {
			maxA = a
		}
		if b > maxB {
			maxB = b
		}
	}
	if maxA == 0 {
		maxA = 1.0
	}
	if maxB == 0 {
		maxB = 1.0
	}
	for t := range points {
		points[t].ChannelA /= maxA
		points[t].ChannelB /= maxB
	}
	return points
}

func blockMean(mag *Magnitude, x1, y1, x2, y2 int) float64 {
	sum := 0.0
	for y := y1; y < y2; y++ {
		rowBase := y * mag.Size
		for x := x1; x < x2; x++ {
			sum += mag.Pix[rowBase+x]
		}
	}
	count := (x2 - x1) * (y2 - y1)
	if count <= 0 {
		return 0
	}
	return sum / float64(count)
}
