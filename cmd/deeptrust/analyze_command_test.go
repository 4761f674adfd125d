package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/execute-aditya/Deep-Trust/internal/analysis"
	"github.com/execute-aditya/Deep-Trust/internal/testsupport"
)

func TestAnalyzeCommandTableOutput(t *testing.T) {
	env := setupCLITestEnv(t)

	mediaPath := filepath.Join(env.baseDir, "sample.jpg")
	testsupport.WriteFile(t, mediaPath, testsupport.JPEGBytes(t, testsupport.GradientImage(64, 64), 85))

	out, _, err := runCLI(t, env.configPath, "analyze", mediaPath)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	requireContains(t, out, "sample.jpg")
	requireContains(t, out, "Verdict")
	requireContains(t, out, `Analysis of "sample.jpg"`)
}

func TestAnalyzeCommandJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t)

	mediaPath := filepath.Join(env.baseDir, "photo.jpg")
	testsupport.WriteFile(t, mediaPath, testsupport.JPEGBytes(t, testsupport.GradientImage(48, 48), 85))

	out, _, err := runCLI(t, env.configPath, "analyze", "--json", "--no-save", mediaPath)
	if err != nil {
		t.Fatalf("analyze --json: %v", err)
	}

	var resp analysis.Response
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Verdict == "" {
		t.Fatal("expected a verdict in JSON output")
	}
	if len(resp.Visual.HeatmapData) != 8 {
		t.Fatalf("expected 8 heatmap rows, got %d", len(resp.Visual.HeatmapData))
	}
}

func TestAnalyzeCommandRejectsUnknownFile(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env.configPath, "analyze", filepath.Join(env.baseDir, "missing.jpg"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
