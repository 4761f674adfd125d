package textutil_test

import (
	"testing"

	"github.com/execute-aditya/Deep-Trust/internal/textutil"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"  padded.png  ", "padded.png"},
		{"a/b\\c:d.jpg", "a-b-c-d.jpg"},
		{"what?.jpg", "what.jpg"},
		{`"quoted"<>|.mp4`, "quoted.mp4"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := textutil.SanitizeFileName(tc.in); got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Manipulated", "manipulated"},
		{"some value!", "some_value"},
		{"", "unknown"},
		{"___", "unknown"},
	}
	for _, tc := range tests {
		if got := textutil.SanitizeToken(tc.in); got != tc.want {
			t.Fatalf("SanitizeToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
