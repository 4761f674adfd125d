package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/execute-aditya/Deep-Trust/internal/analysis"
	"github.com/execute-aditya/Deep-Trust/internal/config"
	"github.com/execute-aditya/Deep-Trust/internal/fileutil"
	"github.com/execute-aditya/Deep-Trust/internal/fusion"
	"github.com/execute-aditya/Deep-Trust/internal/logging"
	"github.com/execute-aditya/Deep-Trust/internal/report"
	"github.com/execute-aditya/Deep-Trust/internal/services"
	"github.com/execute-aditya/Deep-Trust/internal/textutil"
)

// Version is reported by the health endpoint.
const Version = "2.0"

type apiServer struct {
	bind        string
	maxUpload   int64
	keepUploads bool
	uploadDir   string
	logger      *slog.Logger
	daemon      *Daemon
	metrics     *metrics

	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) (*apiServer, error) {
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, errors.New("api bind address is required")
	}

	srv := &apiServer{
		bind:        bind,
		maxUpload:   cfg.MaxUploadBytes(),
		keepUploads: cfg.Analysis.KeepUploads,
		uploadDir:   filepath.Join(cfg.Paths.DataDir, "uploads"),
		logger:      logger,
		daemon:      d,
		metrics:     newMetrics(),
	}

	token := cfg.Paths.APIToken
	mux := http.NewServeMux()
	mux.HandleFunc("/health", srv.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(srv.metrics.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/api/analyze", authMiddleware(token, srv.handleAnalyze))
	mux.HandleFunc("/api/reports", authMiddleware(token, srv.handleReports))
	mux.HandleFunc("/api/reports/", authMiddleware(token, srv.handleReport))
	mux.HandleFunc("/api/stats", authMiddleware(token, srv.handleStats))

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       120 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) address() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"version":   Version,
		"detectors": []string{"face", "ela", "frequency", "ai"},
	})
}

func (s *apiServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.metrics.rejects.WithLabelValues("too_large").Inc()
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("file too large (max %d MB)", s.maxUpload>>20))
			return
		}
		s.metrics.rejects.WithLabelValues("bad_request").Inc()
		s.writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.metrics.rejects.WithLabelValues("bad_request").Inc()
		s.writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	requestID := uuid.NewString()
	ctx := services.WithRequestID(r.Context(), requestID)

	start := time.Now()
	resp, err := s.daemon.analyzer.Analyze(ctx, header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrEmptyUpload):
			s.metrics.rejects.WithLabelValues("empty").Inc()
			s.writeError(w, http.StatusBadRequest, "empty file uploaded")
		case errors.Is(err, analysis.ErrUnsupportedType):
			s.metrics.rejects.WithLabelValues("unsupported_type").Inc()
			s.writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.log().Error("analysis failed",
				logging.String("request_id", requestID),
				logging.Error(err))
			s.notifyFailure(ctx, header.Filename, err)
			s.writeError(w, http.StatusInternalServerError, "analysis failed")
		}
		return
	}

	s.metrics.analyses.WithLabelValues(resp.Verdict, string(resp.Kind)).Inc()
	s.metrics.analysisSeconds.Observe(time.Since(start).Seconds())

	s.markPriorSightings(ctx, requestID, resp)

	record := recordFromResponse(header.Filename, int64(len(data)), resp)
	saved, err := s.daemon.store.Save(ctx, record)
	if err != nil {
		// The analysis itself succeeded; log and return it anyway.
		s.log().Warn("failed to persist report",
			logging.String("request_id", requestID),
			logging.Error(err))
	}

	if s.keepUploads {
		s.archiveUpload(requestID, saved, resp.Verdict, header.Filename, data)
	}
	s.notifyVerdict(ctx, header.Filename, resp)

	s.writeJSON(w, http.StatusOK, resp)
}

// markPriorSightings fills the provenance ledger block when the same content
// hash was analyzed before, pointing at the earlier report.
func (s *apiServer) markPriorSightings(ctx context.Context, requestID string, resp *analysis.Response) {
	prior, err := s.daemon.store.FindBySHA256(ctx, resp.SHA256)
	if err != nil {
		s.log().Warn("failed to check report history",
			logging.String("request_id", requestID),
			logging.Error(err))
		return
	}
	if prior == nil {
		return
	}
	seen := prior.CreatedAt.UTC().Format(time.RFC3339)
	resp.Blockchain.Found = true
	resp.Blockchain.OriginalUploader = &prior.Filename
	resp.Blockchain.Timestamp = &seen
	resp.Blockchain.ChainValid = true
}

// archiveUpload keeps the raw upload on disk for later re-analysis. The
// archive name leads with the report ID and verdict so files sort next to
// their records.
func (s *apiServer) archiveUpload(requestID string, saved *report.Record, verdict, filename string, data []byte) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		s.log().Warn("failed to create upload archive dir",
			logging.String("request_id", requestID),
			logging.Error(err))
		return
	}
	prefix := requestID
	if saved != nil {
		prefix = saved.ID
	}
	name := prefix + "_" + textutil.SanitizeToken(verdict) + "_" + textutil.SanitizeFileName(filename)
	if err := fileutil.WriteFileVerified(filepath.Join(s.uploadDir, name), data, 0o644); err != nil {
		s.log().Warn("failed to archive upload",
			logging.String("request_id", requestID),
			logging.Error(err))
	}
}

func (s *apiServer) notifyVerdict(ctx context.Context, filename string, resp *analysis.Response) {
	if s.daemon == nil || s.daemon.notifier == nil {
		return
	}
	if resp.Verdict != fusion.VerdictManipulated && resp.Verdict != fusion.VerdictSuspicious {
		return
	}
	if err := s.daemon.notifier.NotifyManipulationDetected(ctx, filename, resp.Verdict, resp.Confidence); err != nil {
		s.log().Warn("failed to send notification", logging.Error(err))
	}
}

func (s *apiServer) notifyFailure(ctx context.Context, filename string, cause error) {
	if s.daemon == nil || s.daemon.notifier == nil {
		return
	}
	if err := s.daemon.notifier.NotifyAnalysisFailed(ctx, filename, cause); err != nil {
		s.log().Warn("failed to send notification", logging.Error(err))
	}
}

func (s *apiServer) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 50
	}
	records, err := s.daemon.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"reports": records})
}

func (s *apiServer) handleReport(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/reports/")
	if id == "" || strings.Contains(id, "/") {
		s.writeError(w, http.StatusNotFound, "report not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		record, err := s.daemon.store.GetByID(r.Context(), id)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if record == nil {
			s.writeError(w, http.StatusNotFound, "report not found")
			return
		}
		if record.ResponseJSON != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(record.ResponseJSON))
			return
		}
		s.writeJSON(w, http.StatusOK, record)
	case http.MethodDelete:
		removed, err := s.daemon.store.Remove(r.Context(), id)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !removed {
			s.writeError(w, http.StatusNotFound, "report not found")
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	stats, err := s.daemon.store.Stats(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func recordFromResponse(filename string, size int64, resp *analysis.Response) *report.Record {
	raw, err := json.Marshal(resp)
	if err != nil {
		raw = nil
	}
	return &report.Record{
		Filename:     filename,
		MediaType:    string(resp.Kind),
		SizeBytes:    size,
		SHA256:       resp.SHA256,
		Verdict:      resp.Verdict,
		Confidence:   resp.Confidence,
		ProcessingMs: resp.ProcessingTime,
		ResponseJSON: string(raw),
	}
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *apiServer) log() *slog.Logger {
	if s.logger != nil {
		return logging.WithComponent(s.logger, "api-server")
	}
	return logging.NewNop()
}
