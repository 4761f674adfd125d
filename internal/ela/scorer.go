package ela

import (
	"math"

	"github.com/execute-aditya/Deep-Trust/internal/media"
)

// Heatmap dimensions are fixed regardless of input resolution.
const (
	HeatmapRows = 8
	HeatmapCols = 12
)

// Artifact flags a named image region with anomalous error levels.
type Artifact struct {
	Region   string  `json:"region"`
	Severity float64 `json:"severity"`
}

// Result is the complete output of one ELA pass. It is structurally valid
// even when Err is set: scores are zero and the heatmap keeps its fixed
// shape so downstream fusion never sees a malformed input.
type Result struct {
	ManipulationScore float64     `json:"manipulation_score"`
	MeanDifference    float64     `json:"mean_difference"`
	StdDifference     float64     `json:"std_difference"`
	MaxDifference     float64     `json:"max_difference"`
	Heatmap           [][]float64 `json:"heatmap_data"`
	Artifacts         []Artifact  `json:"artifacts"`
	Err               string      `json:"error,omitempty"`
}

// Degraded returns a zeroed but well-formed result carrying an error
// description.
func Degraded(reason string) Result {
	heatmap := make([][]float64, HeatmapRows)
	for i := range heatmap {
		heatmap[i] = make([]float64, HeatmapCols)
	}
	return Result{Heatmap: heatmap, Artifacts: []Artifact{}, Err: reason}
}

// Scorer derives manipulation scores from error fields.
type Scorer struct {
	cal Calibration
}

// NewScorer constructs a scorer with the given calibration.
func NewScorer(cal Calibration) *Scorer {
	return &Scorer{cal: cal}
}

// Analyze decodes image bytes and runs the full ELA pipeline. Failures
// degrade to a zeroed result; this method never returns an error.
func (s *Scorer) Analyze(data []byte) Result {
	img, _, err := media.Decode(data)
	if err != nil {
		return Degraded(err.Error())
	}
	field, err := ComputeErrorField(img, s.cal.Quality)
	if err != nil {
		return Degraded(err.Error())
	}
	return s.ScoreField(field)
}

// ScoreField computes scores, heatmap, and artifacts from an error field.
func (s *Scorer) ScoreField(field *ErrorField) Result {
	if field == nil || len(field.Samples) == 0 {
		return Degraded("empty error field")
	}

	mean, std := meanStd(field.Samples)

	varianceScore := math.Min(1.0, std/s.cal.VarianceDivisor)
	meanScore := math.Min(1.0, mean/s.cal.MeanDivisor)
	score := varianceScore*s.cal.VarianceWeight + meanScore*s.cal.MeanWeight

	gray := field.grayscale()

	return Result{
		ManipulationScore: score,
		MeanDifference:    mean,
		StdDifference:     std,
		MaxDifference:     field.Max,
		Heatmap:           heatmap(gray),
		Artifacts:         s.detectArtifacts(gray),
	}
}

// heatmap partitions the grayscale error field into the fixed grid. The last
// row and column absorb any remainder so the grid always covers the image.
func heatmap(gray media.Gray) [][]float64 {
	maxVal := 0.0
	for _, v := range gray.Pix {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1.0
	}

	cellH := gray.Height / HeatmapRows
	cellW := gray.Width / HeatmapCols

	out := make([][]float64, HeatmapRows)
	for i := 0; i < HeatmapRows; i++ {
		row := make([]float64, HeatmapCols)
		for j := 0; j < HeatmapCols; j++ {
			y1, y2 := i*cellH, (i+1)*cellH
			if i == HeatmapRows-1 {
				y2 = gray.Height
			}
			x1, x2 := j*cellW, (j+1)*cellW
			if j == HeatmapCols-1 {
				x2 = gray.Width
			}
			row[j] = regionMean(gray, x1, y1, x2, y2) / maxVal
		}
		out[i] = row
	}
	return out
}

// namedRegion bounds are fixed fractions of the frame. The names describe
// where faces typically sit in portrait media, but the bounds deliberately
// do not track detected face geometry.
type namedRegion struct {
	name           string
	x1, y1, x2, y2 func(w, h int) int
}

var namedRegions = []namedRegion{
	{"Upper face / Forehead",
		func(w, h int) int { return 0 }, func(w, h int) int { return 0 },
		func(w, h int) int { return w }, func(w, h int) int { return h / 3 }},
	{"Eye region",
		func(w, h int) int { return w / 6 }, func(w, h int) int { return h / 6 },
		func(w, h int) int { return w * 5 / 6 }, func(w, h int) int { return h / 2 }},
	{"Lower face / Jawline",
		func(w, h int) int { return 0 }, func(w, h int) int { return h / 2 },
		func(w, h int) int { return w }, func(w, h int) int { return h }},
	{"Left face boundary",
		func(w, h int) int { return 0 }, func(w, h int) int { return 0 },
		func(w, h int) int { return w / 4 }, func(w, h int) int { return h }},
	{"Right face boundary",
		func(w, h int) int { return w * 3 / 4 }, func(w, h int) int { return 0 },
		func(w, h int) int { return w }, func(w, h int) int { return h }},
}

func (s *Scorer) detectArtifacts(gray media.Gray) []Artifact {
	artifacts := []Artifact{}

	mean, std := meanStd(gray.Pix)
	if std < s.cal.UniformStdCutoff {
		// Too uniform to carry regional signal.
		return artifacts
	}
	threshold := mean + s.cal.RegionSigma*std

	for _, region := range namedRegions {
		x1 := region.x1(gray.Width, gray.Height)
		y1 := region.y1(gray.Width, gray.Height)
		x2 := region.x2(gray.Width, gray.Height)
		y2 := region.y2(gray.Width, gray.Height)
		if x2 <= x1 || y2 <= y1 {
			continue
		}
		rm := regionMean(gray, x1, y1, x2, y2)
		if rm > threshold {
			severity := math.Min(1.0, (rm-mean)/(s.cal.SeveritySigma*std))
			artifacts = append(artifacts, Artifact{Region: region.name, Severity: severity})
		}
	}
	return artifacts
}

func regionMean(gray media.Gray, x1, y1, x2, y2 int) float64 {
	if x2 <= x1 || y2 <= y1 {
		return 0
	}
	sum := 0.0
	for y := y1; y < y2; y++ {
		rowBase := y * gray.Width
		for x := x1; x < x2; x++ {
			sum += gray.Pix[rowBase+x]
		}
	}
	return sum / float64((x2-x1)*(y2-y1))
}

// meanStd returns the mean and population standard deviation.
func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}
