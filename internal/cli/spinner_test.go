package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// captureOutput redirects status and spinner output for one test.
func captureOutput(t *testing.T) (out, errOut *syncBuffer) {
	t.Helper()
	out, errOut = &syncBuffer{}, &syncBuffer{}
	prevOut, prevErr := stdout, stderr
	stdout, stderr = out, errOut
	t.Cleanup(func() { stdout, stderr = prevOut, prevErr })
	return out, errOut
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	_, errOut := captureOutput(t)

	s := newSpinner(context.Background(), "Loading scene")
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Update("Patching")
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	got := errOut.String()
	if !strings.Contains(got, "Loading scene") || !strings.Contains(got, "Patching") {
		t.Errorf("spinner output missing messages: %q", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("spinner did not clear its line: %q", got)
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after plain Stop")
	}
}

func TestSpinnerCancelled(t *testing.T) {
	captureOutput(t)

	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) }},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), spinnerInterval)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()
			s := newSpinner(ctx, "Waiting")
			s.Start()
			if tt.name == "cancel" {
				cancel()
			}
			time.Sleep(2 * spinnerInterval)
			s.Stop()
			if !s.Cancelled() {
				t.Error("Cancelled() = false after context ended")
			}
		})
	}
}

func TestSpinnerStopIdempotent(t *testing.T) {
	captureOutput(t)
	s := newSpinner(context.Background(), "Stopping")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopMessages(t *testing.T) {
	out, _ := captureOutput(t)

	s := newSpinner(context.Background(), "Connecting")
	s.Start()
	s.StopWithSuccess("Backends ready")
	s = newSpinner(context.Background(), "Connecting")
	s.Start()
	s.StopWithError("Store unavailable")

	got := out.String()
	for _, want := range []string{iconSuccess, "Backends ready", iconError, "Store unavailable"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q: %q", want, got)
		}
	}
}
