package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/execute-aditya/Deep-Trust/internal/config"
	"github.com/execute-aditya/Deep-Trust/internal/ela"
	"github.com/execute-aditya/Deep-Trust/internal/fusion"
	"github.com/execute-aditya/Deep-Trust/internal/logging"
	"github.com/execute-aditya/Deep-Trust/internal/media"
	"github.com/execute-aditya/Deep-Trust/internal/provenance"
	"github.com/execute-aditya/Deep-Trust/internal/services/classifier"
	"github.com/execute-aditya/Deep-Trust/internal/services/faces"
	"github.com/execute-aditya/Deep-Trust/internal/spectral"
)

// ErrUnsupportedType is returned when the uploaded content cannot be
// classified as image, video, or audio.
var ErrUnsupportedType = errors.New("unsupported file type")

// ErrEmptyUpload is returned for zero-length uploads.
var ErrEmptyUpload = errors.New("empty file uploaded")

// FrameExtractor pulls a representative still frame out of video content.
type FrameExtractor interface {
	ExtractFrame(ctx context.Context, data []byte) ([]byte, error)
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithClassifier wires an external deepfake classifier service.
func WithClassifier(svc classifier.Service) Option {
	return func(a *Analyzer) { a.classifier = svc }
}

// WithFaces wires an external face-detection service.
func WithFaces(svc faces.Service) Option {
	return func(a *Analyzer) { a.faces = svc }
}

// WithFrameExtractor wires a video frame extractor. Without one, video
// uploads produce a degraded result built from default detector outputs.
func WithFrameExtractor(fe FrameExtractor) Option {
	return func(a *Analyzer) { a.frames = fe }
}

// Analyzer runs the detector pipeline and fuses the results.
type Analyzer struct {
	log        *slog.Logger
	elaScorer  *ela.Scorer
	specScorer *spectral.Scorer
	engine     *fusion.Engine
	classifier classifier.Service
	faces      faces.Service
	frames     FrameExtractor
	timeout    time.Duration
}

// New builds an Analyzer from configuration. External services are only
// attached via options; pass nil config values through testsupport instead.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Analyzer {
	if logger == nil {
		logger = logging.NewNop()
	}
	cal := cfg.Calibration
	a := &Analyzer{
		log:        logging.WithComponent(logger, "analysis"),
		elaScorer:  ela.NewScorer(cal.ELA),
		specScorer: spectral.NewScorer(cal.Spectral),
		engine:     fusion.NewEngine(cal.Fusion),
		timeout:    time.Duration(cfg.Analysis.DetectorTimeoutSeconds) * time.Second,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the full pipeline over uploaded media and returns the
// response document. Detector failures degrade the relevant scores rather
// than failing the analysis; only malformed requests return an error.
func (a *Analyzer) Analyze(ctx context.Context, filename, contentType string, data []byte) (*Response, error) {
	start := time.Now()

	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}

	kind := media.KindOf(contentType, data)
	if kind == media.KindUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	results := a.runDetectors(ctx, kind, data)

	verdict := a.engine.Fuse(fusion.Inputs{
		Filename:   filename,
		Kind:       kind,
		ELA:        results.ela,
		Spectral:   results.spectral,
		Provenance: results.provenance,
		Classifier: results.classifier,
		Faces:      results.faces,
	})

	a.log.Info("analysis complete",
		logging.String("filename", filename),
		logging.String("kind", string(kind)),
		logging.String("verdict", verdict.Verdict),
		slog.Float64("confidence", verdict.Confidence),
		slog.Duration("elapsed", time.Since(start)),
	)

	return a.buildResponse(verdict, results, kind, hash, time.Since(start)), nil
}

type detectorResults struct {
	ela        ela.Result
	spectral   spectral.Result
	provenance provenance.Result
	classifier classifier.Signal
	faces      faces.Result
}

func (a *Analyzer) runDetectors(ctx context.Context, kind media.Kind, data []byte) detectorResults {
	switch kind {
	case media.KindAudio:
		return detectorResults{
			ela:        ela.Degraded(""),
			spectral:   spectral.AnalyzeAudio(data),
			classifier: classifier.Unavailable("audio content"),
			faces:      faces.None(),
		}
	case media.KindVideo:
		frame, err := a.extractFrame(ctx, data)
		if err != nil {
			a.log.Warn("video frame extraction failed", logging.Error(err))
			return detectorResults{
				ela:        ela.Degraded("frame extraction failed"),
				spectral:   spectral.Degraded("frame extraction failed"),
				classifier: classifier.Unavailable("frame extraction failed"),
				faces:      faces.None(),
			}
		}
		return a.runImageDetectors(ctx, frame)
	default:
		return a.runImageDetectors(ctx, data)
	}
}

func (a *Analyzer) runImageDetectors(ctx context.Context, data []byte) detectorResults {
	var (
		results detectorResults
		wg      sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		results.ela = a.elaScorer.Analyze(data)
	}()
	go func() {
		defer wg.Done()
		results.spectral = a.specScorer.Analyze(data)
	}()
	go func() {
		defer wg.Done()
		results.provenance = provenance.Score(data)
	}()

	svcCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		svcCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	results.classifier = classifier.Unavailable("classifier service disabled")
	if a.classifier != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results.classifier = a.classifier.Classify(svcCtx, data)
		}()
	}

	results.faces = faces.None()
	if a.faces != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results.faces = a.faces.Detect(svcCtx, data)
		}()
	}

	wg.Wait()
	return results
}

func (a *Analyzer) extractFrame(ctx context.Context, data []byte) ([]byte, error) {
	if a.frames == nil {
		return nil, errors.New("no frame extractor configured")
	}
	return a.frames.ExtractFrame(ctx, data)
}

func (a *Analyzer) buildResponse(verdict fusion.Verdict, results detectorResults, kind media.Kind, hash string, elapsed time.Duration) *Response {
	elaScore := results.ela.ManipulationScore
	specScore := results.spectral.SpectralAnomaly
	signal := verdict.AdjustedSignal

	return &Response{
		Verdict:    verdict.Verdict,
		Confidence: round4(verdict.Confidence),
		Visual: Visual{
			Score:       round4(elaScore),
			Artifacts:   results.ela.Artifacts,
			HeatmapData: results.ela.Heatmap,
		},
		Audio: Audio{
			Score:           round4(specScore),
			SpectralAnomaly: round4(specScore),
			WaveformData:    results.spectral.Waveform,
		},
		CrossModal: CrossModal{
			SyncScore:       round4(a.engine.CrossModalSync(elaScore, specScore)),
			CorrelationData: results.spectral.Correlation,
		},
		Blockchain: Blockchain{
			Hash: "sha256:" + hash[:32],
		},
		Explanation:    verdict.Explanation,
		ProcessingTime: elapsed.Milliseconds(),
		Detectors: Detectors{
			FaceDetection: results.faces,
			AIClassification: AISummary{
				Success:    signal.Available,
				Label:      signal.Label,
				Confidence: signal.Confidence,
				RealScore:  signal.RealScore,
				FakeScore:  signal.FakeScore,
				Method:     signal.Method,
			},
			ELAScore:       elaScore,
			FrequencyScore: specScore,
		},
		Kind:   kind,
		SHA256: hash,
	}
}
