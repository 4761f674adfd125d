package analysis

import (
	"math"

	"github.com/execute-aditya/Deep-Trust/internal/ela"
	"github.com/execute-aditya/Deep-Trust/internal/media"
	"github.com/execute-aditya/Deep-Trust/internal/services/faces"
	"github.com/execute-aditya/Deep-Trust/internal/spectral"
)

// Response is the analysis result document returned by the API and stored
// in the report history. Field names follow the published wire contract.
type Response struct {
	Verdict        string     `json:"verdict"`
	Confidence     float64    `json:"confidence"`
	Visual         Visual     `json:"visual"`
	Audio          Audio      `json:"audio"`
	CrossModal     CrossModal `json:"crossModal"`
	Blockchain     Blockchain `json:"blockchain"`
	Explanation    string     `json:"explanation"`
	ProcessingTime int64      `json:"processingTime"`
	Detectors      Detectors  `json:"detectors"`

	// Bookkeeping for persistence, not part of the wire contract.
	Kind   media.Kind `json:"-"`
	SHA256 string     `json:"-"`
}

// Visual carries the error level analysis results.
type Visual struct {
	Score       float64        `json:"score"`
	Artifacts   []ela.Artifact `json:"artifacts"`
	HeatmapData [][]float64    `json:"heatmapData"`
}

// Audio carries the spectral analysis results.
type Audio struct {
	Score           float64   `json:"score"`
	SpectralAnomaly float64   `json:"spectralAnomaly"`
	WaveformData    []float64 `json:"waveformData"`
}

// CrossModal carries the combined visual/audio consistency view.
type CrossModal struct {
	SyncScore       float64                     `json:"syncScore"`
	CorrelationData []spectral.CorrelationPoint `json:"correlationData"`
}

// Blockchain is the provenance-registry placeholder block. No registry is
// wired yet, so found and chainValid are always false; the hash lets
// clients correlate re-uploads of the same content.
type Blockchain struct {
	Found            bool    `json:"found"`
	Hash             string  `json:"hash"`
	OriginalUploader *string `json:"originalUploader"`
	Timestamp        *string `json:"timestamp"`
	ChainValid       bool    `json:"chainValid"`
}

// Detectors exposes the raw per-detector outputs.
type Detectors struct {
	FaceDetection    faces.Result `json:"face_detection"`
	AIClassification AISummary    `json:"ai_classification"`
	ELAScore         float64      `json:"ela_score"`
	FrequencyScore   float64      `json:"frequency_score"`
}

// AISummary is the classifier signal trimmed to the published fields.
type AISummary struct {
	Success    bool    `json:"success"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	RealScore  float64 `json:"real_score"`
	FakeScore  float64 `json:"fake_score"`
	Method     string  `json:"method"`
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
