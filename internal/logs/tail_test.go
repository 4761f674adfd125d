package logs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/execute-aditya/Deep-Trust/internal/logs"
)

func TestLastLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deeptrust.log")
	if err := os.WriteFile(path, []byte("a\nb\nc\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	lines, offset, err := logs.LastLines(path, 2)
	if err != nil {
		t.Fatalf("LastLines: %v", err)
	}
	if len(lines) != 2 || lines[0] != "b" || lines[1] != "c" {
		t.Fatalf("unexpected lines: %#v", lines)
	}
	if offset == 0 {
		t.Fatal("expected offset to advance")
	}
}

func TestLastLinesMissingFile(t *testing.T) {
	lines, offset, err := logs.LastLines(filepath.Join(t.TempDir(), "absent.log"), 5)
	if err != nil {
		t.Fatalf("LastLines: %v", err)
	}
	if len(lines) != 0 || offset != 0 {
		t.Fatalf("expected empty result, got %#v at %d", lines, offset)
	}
}

func TestReadFromPicksUpNewLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deeptrust.log")
	if err := os.WriteFile(path, []byte("start\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	_, offset, err := logs.LastLines(path, 1)
	if err != nil {
		t.Fatalf("LastLines: %v", err)
	}

	done := make(chan struct{})
	go func(offset int64) {
		defer close(done)
		lines, _, err := logs.ReadFrom(context.Background(), path, offset, 5*time.Second)
		if err != nil {
			t.Errorf("ReadFrom: %v", err)
			return
		}
		if len(lines) != 1 || lines[0] != "later" {
			t.Errorf("unexpected lines: %#v", lines)
		}
	}(offset)

	time.Sleep(50 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	if _, err := f.WriteString("later\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	f.Close()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("follow read did not complete")
	}
}

func TestReadFromHonorsContextCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deeptrust.log")
	if err := os.WriteFile(path, []byte("only\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	_, offset, err := logs.LastLines(path, 1)
	if err != nil {
		t.Fatalf("LastLines: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	if _, _, err := logs.ReadFrom(ctx, path, offset, time.Minute); err == nil {
		t.Fatal("expected context error")
	}
}
