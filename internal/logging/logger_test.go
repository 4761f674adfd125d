package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/execute-aditya/Deep-Trust/internal/logging"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewWritesToFileOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.log")

	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("analysis complete", logging.String("verdict", "authentic"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"verdict":"authentic"`) {
		t.Fatalf("log file missing structured field: %s", data)
	}
}

func TestWithComponentToleratesNilLogger(t *testing.T) {
	logger := logging.WithComponent(nil, "ela")
	logger.Info("should not panic")
}
