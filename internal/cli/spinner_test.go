package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

// lockedBuffer is a bytes.Buffer safe to read while a spinner writes to it.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// captureSpinner points spinnerOut at a buffer for the duration of the test.
func captureSpinner(t *testing.T) *lockedBuffer {
	t.Helper()
	buf := &lockedBuffer{}
	prev := spinnerOut
	spinnerOut = buf
	t.Cleanup(func() { spinnerOut = prev })
	return buf
}

func TestSpinnerSilentWithoutTerminal(t *testing.T) {
	out := captureSpinner(t)

	s := newSpinner("Loading acme.json...")
	if !s.quiet {
		t.Fatal("spinner writing to a buffer should be quiet")
	}
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if got := out.String(); got != "" {
		t.Errorf("spinner wrote %q to a non-terminal", got)
	}
}

func TestSpinnerDrawsWhenInteractive(t *testing.T) {
	out := captureSpinner(t)

	s := newSpinner("Fetching metadata...")
	s.quiet = false
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "\r") || !strings.Contains(got, "Fetching metadata...") {
		t.Errorf("expected frames with carriage returns, got %q", got)
	}
}

func TestInteractive(t *testing.T) {
	if interactive(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
	if interactive(io.Discard) {
		t.Error("io.Discard is not a terminal")
	}
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if interactive(f) {
		t.Error("a regular file is not a terminal")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	captureSpinner(t)
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Building map...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should be cancelled after context cancellation")
	}
}

func TestSpinnerWithTimeout(t *testing.T) {
	captureSpinner(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Rendering svg...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	captureSpinner(t)
	s := newSpinner("Clearing cache...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()

	if !s.Cancelled() {
		t.Error("Stop cancels the spinner context")
	}
}

func TestSpinnerStopWithMessage(t *testing.T) {
	captureSpinner(t)
	quietOutput(t)

	s := newSpinner("Loading source...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("Loaded 3 categories")

	s = newSpinner("Loading source...")
	s.Start()
	s.StopWithError("source not found")
}
