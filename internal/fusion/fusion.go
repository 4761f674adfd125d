// Package fusion combines the independent detector signals into a single
// verdict, confidence, and human-readable explanation. The combination is a
// deterministic rule procedure: no detector failure may prevent a verdict,
// because every upstream scorer degrades to a structurally valid placeholder.
package fusion

import (
	"fmt"
	"math"
	"strings"

	"github.com/execute-aditya/Deep-Trust/internal/ela"
	"github.com/execute-aditya/Deep-Trust/internal/media"
	"github.com/execute-aditya/Deep-Trust/internal/provenance"
	"github.com/execute-aditya/Deep-Trust/internal/services/classifier"
	"github.com/execute-aditya/Deep-Trust/internal/services/faces"
	"github.com/execute-aditya/Deep-Trust/internal/spectral"
)

// Verdict labels, from most to least trustworthy.
const (
	VerdictAuthentic   = "authentic"
	VerdictUncertain   = "uncertain"
	VerdictSuspicious  = "suspicious"
	VerdictManipulated = "manipulated"
)

// Inputs carries everything fusion consumes for one analysis request.
type Inputs struct {
	Filename   string
	Kind       media.Kind
	ELA        ela.Result
	Spectral   spectral.Result
	Provenance provenance.Result
	Classifier classifier.Signal
	Faces      faces.Result
}

// Verdict is the fused decision for one analysis request.
type Verdict struct {
	Verdict     string  `json:"verdict"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
	// AdjustedSignal is the classifier signal after Stage A
	// cross-validation, surfaced for response reporting.
	AdjustedSignal classifier.Signal `json:"-"`
}

// Engine applies the two-stage fusion rules.
type Engine struct {
	cal Calibration
}

// NewEngine constructs a fusion engine with the given calibration.
func NewEngine(cal Calibration) *Engine {
	return &Engine{cal: cal}
}

// CrossValidate is Stage A: when the classifier calls fake but the image
// carries a camera signature, the fake signal is sharply downgraded and the
// label flipped to real. Camera-authenticated images cannot be synthetic;
// the classifier false-positives on real phone photos.
func (e *Engine) CrossValidate(signal classifier.Signal, prov provenance.Result) classifier.Signal {
	if !signal.Available {
		return signal
	}
	if signal.FakeScore <= e.cal.CrossValidationFloor || !prov.HasCameraSignature {
		return signal
	}

	adjusted := signal
	adjusted.FakeScore = signal.FakeScore * e.cal.CameraOverrideFactor
	adjusted.RealScore = 1.0 - adjusted.FakeScore
	adjusted.Label = classifier.LabelReal
	adjusted.Confidence = adjusted.RealScore
	adjusted.Details = append([]string{fmt.Sprintf(
		"Classifier fake score %.1f%% overridden by camera metadata. %s",
		signal.FakeScore*100, prov.Summary)}, signal.Details...)
	return adjusted
}

// Fuse runs both stages and assembles the final verdict and explanation.
func (e *Engine) Fuse(in Inputs) Verdict {
	signal := e.CrossValidate(in.Classifier, in.Provenance)

	verdict, confidence := e.decide(signal, in.ELA.ManipulationScore, in.Spectral.SpectralAnomaly)

	return Verdict{
		Verdict:        verdict,
		Confidence:     confidence,
		Explanation:    e.explain(in, signal),
		AdjustedSignal: signal,
	}
}

// decide is Stage B: classifier-driven thresholds when available, detector
// blend otherwise. Every comparison is strict so boundary scores fall into
// the milder tier.
func (e *Engine) decide(signal classifier.Signal, elaScore, spectralScore float64) (string, float64) {
	if signal.Available {
		fs := signal.FakeScore
		switch {
		case fs > e.cal.ManipulatedThreshold:
			return VerdictManipulated, math.Min(0.99, 0.5+fs*0.49)
		case fs > e.cal.SuspiciousThreshold:
			return VerdictSuspicious, math.Min(0.85, 0.5+(fs-0.5)*1.0)
		case fs < e.cal.AuthenticThreshold:
			return VerdictAuthentic, math.Min(0.99, 0.6+(1.0-fs)*0.35)
		default:
			return VerdictUncertain, math.Min(0.70, 0.5+math.Abs(fs-0.4)*0.5)
		}
	}

	combined := elaScore*e.cal.ELAWeight + spectralScore*e.cal.SpectralWeight
	if combined > e.cal.FallbackThreshold {
		return VerdictSuspicious, math.Min(0.99, 0.5+combined*0.3)
	}
	return VerdictAuthentic, math.Min(0.99, 0.6+(1.0-combined)*0.2)
}

// explain assembles the fixed-order explanation clauses: classifier
// statement, face summary, ELA tier, spectral tier.
func (e *Engine) explain(in Inputs, signal classifier.Signal) string {
	var clauses []string

	clauses = append(clauses, classifierClause(signal))

	if in.Kind == media.KindImage || in.Kind == media.KindVideo {
		clauses = append(clauses, faceClause(in.Faces))
	}

	elaScore := in.ELA.ManipulationScore
	switch {
	case elaScore > e.cal.FlaggedTier:
		clauses = append(clauses, fmt.Sprintf(
			"Error Level Analysis flagged manipulation indicators (score: %.1f%%).", elaScore*100))
	case elaScore > e.cal.MinorTier:
		clauses = append(clauses, fmt.Sprintf(
			"ELA shows minor re-encoding artifacts (%.1f%%).", elaScore*100))
	default:
		clauses = append(clauses, fmt.Sprintf(
			"ELA shows consistent error levels (%.1f%%) - no JPEG-level tampering.", elaScore*100))
	}

	spectralScore := in.Spectral.SpectralAnomaly
	switch {
	case spectralScore > e.cal.FlaggedTier:
		clauses = append(clauses, fmt.Sprintf(
			"Spectral analysis detected anomalous frequency patterns (%.1f%%).", spectralScore*100))
	case spectralScore > e.cal.MinorTier:
		clauses = append(clauses, fmt.Sprintf(
			"Spectral analysis shows minor irregularities (%.1f%%).", spectralScore*100))
	}

	name := in.Filename
	if name == "" {
		name = "unknown"
	}
	return fmt.Sprintf("Analysis of %q: %s", name, strings.Join(clauses, " "))
}

func classifierClause(signal classifier.Signal) string {
	if !signal.Available {
		return "AI forensic classifier unavailable; using basic forensics only."
	}
	switch signal.Label {
	case classifier.LabelFake:
		clause := fmt.Sprintf(
			"Forensic AI analysis detected deepfake/GAN artifacts (fake score: %.1f%%, confidence: %.1f%%).",
			signal.FakeScore*100, signal.Confidence*100)
		if len(signal.Details) > 0 {
			preview := signal.Details
			if len(preview) > 2 {
				preview = preview[:2]
			}
			clause += " Analysis found: " + strings.Join(preview, "; ")
		}
		return clause
	case classifier.LabelReal:
		return fmt.Sprintf(
			"Forensic AI analysis indicates authentic content (real score: %.1f%%, confidence: %.1f%%).",
			signal.RealScore*100, signal.Confidence*100)
	default:
		return fmt.Sprintf(
			"Forensic AI analysis was inconclusive (fake: %.1f%%, real: %.1f%%).",
			signal.FakeScore*100, signal.RealScore*100)
	}
}

func faceClause(result faces.Result) string {
	if result.FaceCount > 0 {
		return fmt.Sprintf("Detected %d face(s) via %s (avg confidence %.1f%%).",
			result.FaceCount, result.Method, result.AverageConfidence()*100)
	}
	return "No faces detected in the media."
}

// CrossModalSync derives the cross-modal consistency score reported in the
// response envelope: 1 when both detectors are quiet, approaching 0 as
// either flags the media.
func (e *Engine) CrossModalSync(elaScore, spectralScore float64) float64 {
	return 1.0 - elaScore*e.cal.ELAWeight - spectralScore*e.cal.SpectralWeight
}
