package main

import (
	"path/filepath"
	"testing"

	"github.com/execute-aditya/Deep-Trust/internal/testsupport"
)

func analyzeSample(t *testing.T, env *cliTestEnv, name string) {
	t.Helper()
	mediaPath := filepath.Join(env.baseDir, name)
	testsupport.WriteFile(t, mediaPath, testsupport.JPEGBytes(t, testsupport.GradientImage(64, 64), 85))
	if _, _, err := runCLI(t, env.configPath, "analyze", mediaPath); err != nil {
		t.Fatalf("analyze %s: %v", name, err)
	}
}

func TestHistoryListShowsSavedAnalyses(t *testing.T) {
	env := setupCLITestEnv(t)
	analyzeSample(t, env, "first.jpg")
	analyzeSample(t, env, "second.jpg")

	out, _, err := runCLI(t, env.configPath, "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "first.jpg")
	requireContains(t, out, "second.jpg")
}

func TestHistoryShowResolvesPrefix(t *testing.T) {
	env := setupCLITestEnv(t)
	analyzeSample(t, env, "clip.jpg")

	out, _, err := runCLI(t, env.configPath, "history", "list", "--json")
	if err != nil {
		t.Fatalf("history list --json: %v", err)
	}
	id := extractFirstID(t, out)

	detail, _, err := runCLI(t, env.configPath, "history", "show", id[:8])
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, detail, "\"verdict\"")
	requireContains(t, detail, "\"explanation\"")
}

func TestHistoryShowUnknownID(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env.configPath, "history", "show", "doesnotexist")
	if err == nil {
		t.Fatal("expected error for unknown report id")
	}
}

func TestHistoryStatsCountsVerdicts(t *testing.T) {
	env := setupCLITestEnv(t)
	analyzeSample(t, env, "one.jpg")

	out, _, err := runCLI(t, env.configPath, "history", "stats")
	if err != nil {
		t.Fatalf("history stats: %v", err)
	}
	requireContains(t, out, "total")
	requireContains(t, out, "1")
}

func TestHistoryPruneKeepsRecentReports(t *testing.T) {
	env := setupCLITestEnv(t)
	analyzeSample(t, env, "fresh.jpg")

	out, _, err := runCLI(t, env.configPath, "history", "prune", "--days", "30")
	if err != nil {
		t.Fatalf("history prune: %v", err)
	}
	requireContains(t, out, "Pruned 0 report(s)")

	listed, _, err := runCLI(t, env.configPath, "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, listed, "fresh.jpg")
}
