package faces_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/execute-aditya/Deep-Trust/internal/services/faces"
)

func TestDetectDecodesFaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"faces":[{"bbox":{"x":10,"y":20,"w":100,"h":120},"confidence":0.8},{"bbox":{"x":1,"y":2,"w":30,"h":40},"confidence":0.6}],"detection_method":"dnn"}`))
	}))
	defer server.Close()

	result := faces.NewClient(server.URL).Detect(context.Background(), []byte("payload"))
	if result.FaceCount != 2 {
		t.Fatalf("expected 2 faces, got %d", result.FaceCount)
	}
	if result.Method != "dnn" {
		t.Fatalf("unexpected method %q", result.Method)
	}
	if avg := result.AverageConfidence(); avg != 0.7 {
		t.Fatalf("expected average confidence 0.7, got %v", avg)
	}
}

func TestDetectDegradesToNone(t *testing.T) {
	result := faces.NewClient("").Detect(context.Background(), nil)
	if result.FaceCount != 0 || result.Method != "none" {
		t.Fatalf("expected empty placeholder, got %+v", result)
	}
	if result.Faces == nil {
		t.Fatal("faces must be empty, not nil")
	}
}
