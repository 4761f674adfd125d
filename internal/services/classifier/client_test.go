package classifier_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/execute-aditya/Deep-Trust/internal/services/classifier"
)

func TestClassifyDecodesSignal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"label":"fake","fake_score":0.91,"real_score":0.09,"confidence":0.91,"method":"faceforensics_xception"}`))
	}))
	defer server.Close()

	signal := classifier.NewClient(server.URL).Classify(context.Background(), []byte("payload"))
	if !signal.Available {
		t.Fatalf("expected available signal, got %+v", signal)
	}
	if signal.Label != classifier.LabelFake || signal.FakeScore != 0.91 {
		t.Fatalf("unexpected signal: %+v", signal)
	}
}

func TestClassifyDegradesOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	signal := classifier.NewClient(server.URL).Classify(context.Background(), nil)
	if signal.Available {
		t.Fatalf("expected unavailable signal, got %+v", signal)
	}
	if signal.Label != classifier.LabelUnknown {
		t.Fatalf("expected unknown label, got %q", signal.Label)
	}
	if signal.Err == "" {
		t.Fatal("expected error description")
	}
}

func TestClassifyUnconfigured(t *testing.T) {
	signal := classifier.NewClient("").Classify(context.Background(), nil)
	if signal.Available {
		t.Fatal("unconfigured client must report unavailable")
	}
}
