package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func TestNotifyTestCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	var received bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = true
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nlog_dir = %q\n\n[notifications]\nntfy_topic = %q\n",
		env.dataDir,
		env.dataDir+"-logs",
		server.URL,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "notify", "test")
	if err != nil {
		t.Fatalf("notify test: %v", err)
	}
	requireContains(t, out, "Test notification sent")
	if !received {
		t.Fatal("expected ntfy endpoint to receive the test notification")
	}
}

func TestNotifyTestRequiresTopic(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env.configPath, "notify", "test"); err == nil {
		t.Fatal("expected error when ntfy topic is not configured")
	}
}
