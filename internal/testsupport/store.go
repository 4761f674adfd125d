package testsupport

import (
	"testing"

	"github.com/execute-aditya/Deep-Trust/internal/config"
	"github.com/execute-aditya/Deep-Trust/internal/report"
)

// MustOpenStore opens a report.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *report.Store {
	t.Helper()

	store, err := report.Open(cfg)
	if err != nil {
		t.Fatalf("report.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
