package daemon

import (
	"context"
	"errors"
	"testing"

	"github.com/execute-aditya/Deep-Trust/internal/analysis"
)

type recordingNotifier struct {
	manipulated []string
	failed      []string
	lastErr     error
}

func (r *recordingNotifier) NotifyManipulationDetected(_ context.Context, filename, verdict string, confidence float64) error {
	r.manipulated = append(r.manipulated, filename+":"+verdict)
	return nil
}

func (r *recordingNotifier) NotifyAnalysisFailed(_ context.Context, filename string, err error) error {
	r.failed = append(r.failed, filename)
	r.lastErr = err
	return nil
}

func (r *recordingNotifier) TestNotification(context.Context) error { return nil }

func TestNotifyFailureForwardsToNotifier(t *testing.T) {
	fake := &recordingNotifier{}
	srv := &apiServer{daemon: &Daemon{notifier: fake}}

	cause := errors.New("detector pipeline crashed")
	srv.notifyFailure(context.Background(), "broken.jpg", cause)

	if len(fake.failed) != 1 || fake.failed[0] != "broken.jpg" {
		t.Fatalf("unexpected failure notifications: %v", fake.failed)
	}
	if !errors.Is(fake.lastErr, cause) {
		t.Fatalf("expected cause to be forwarded, got %v", fake.lastErr)
	}
}

func TestNotifyVerdictOnlyFiresForFlaggedVerdicts(t *testing.T) {
	fake := &recordingNotifier{}
	srv := &apiServer{daemon: &Daemon{notifier: fake}}

	srv.notifyVerdict(context.Background(), "clean.jpg", &analysis.Response{Verdict: "authentic"})
	srv.notifyVerdict(context.Background(), "meh.jpg", &analysis.Response{Verdict: "uncertain"})
	if len(fake.manipulated) != 0 {
		t.Fatalf("unexpected notifications for clean verdicts: %v", fake.manipulated)
	}

	srv.notifyVerdict(context.Background(), "bad.jpg", &analysis.Response{Verdict: "manipulated", Confidence: 0.9})
	srv.notifyVerdict(context.Background(), "odd.jpg", &analysis.Response{Verdict: "suspicious", Confidence: 0.6})
	if len(fake.manipulated) != 2 || fake.manipulated[0] != "bad.jpg:manipulated" || fake.manipulated[1] != "odd.jpg:suspicious" {
		t.Fatalf("unexpected notifications: %v", fake.manipulated)
	}
}
