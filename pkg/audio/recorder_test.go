package audio

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// scriptedSource hands out a fixed sequence of frames, then blocks
// until released so the stop boundary can be exercised.
type scriptedSource struct {
	mu      sync.Mutex
	frames  [][]int16
	next    int
	started bool
	stopped bool
	closed  bool
	release chan struct{}
}

func newScriptedSource(frames ...[]int16) *scriptedSource {
	return &scriptedSource{frames: frames, release: make(chan struct{})}
}

func (s *scriptedSource) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true
	return nil
}

func (s *scriptedSource) ReadFrame() ([]int16, error) {
	s.mu.Lock()
	if s.next < len(s.frames) {
		frame := s.frames[s.next]
		s.next++
		s.mu.Unlock()
		return frame, nil
	}
	s.mu.Unlock()
	// Out of scripted frames: block like a real device with no audio,
	// then fail the read.
	<-s.release
	return nil, errors.New("device drained")
}

func (s *scriptedSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	// Wake any blocked read so Stop can complete.
	select {
	case <-s.release:
	default:
		close(s.release)
	}
	return nil
}

func (s *scriptedSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func waitForFrames(t *testing.T, r *Recorder, n int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for r.FrameCount() < n {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %d frames, have %d", n, r.FrameCount())
		case <-time.After(time.Millisecond):
		}
	}
}

func TestRecorderCapturesAllFrames(t *testing.T) {
	source := newScriptedSource([]int16{1, 1}, []int16{2, 2}, []int16{3, 3})
	rec := NewRecorder(source)

	if err := rec.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !rec.Recording() {
		t.Fatal("Recording() = false right after Start")
	}

	waitForFrames(t, rec, 3)
	// The loop is now parked in a blocking read.
	rec.Stop()

	if rec.Recording() {
		t.Error("Recording() = true after Stop")
	}
	if got := rec.Samples(); len(got) != 6 || got[0] != 1 || got[5] != 3 {
		t.Errorf("Samples() = %v", got)
	}
	if !source.stopped {
		t.Error("Stop did not reach the source")
	}
}

func TestRecorderFrameReadDuringStopIsKept(t *testing.T) {
	// Stop is issued while no frames have been delivered yet; the
	// scripted frames are all read before the loop re-checks the flag,
	// so every one of them must be kept.
	source := newScriptedSource([]int16{9, 9})
	rec := NewRecorder(source)

	if err := rec.Start(); err != nil {
		t.Fatal(err)
	}
	waitForFrames(t, rec, 1)
	rec.Stop()

	if got := rec.FrameCount(); got != 1 {
		t.Errorf("FrameCount() = %d, a frame read before stop was dropped", got)
	}
}

func TestRecorderStartTwiceIsIdempotent(t *testing.T) {
	source := newScriptedSource([]int16{5})
	rec := NewRecorder(source)

	if err := rec.Start(); err != nil {
		t.Fatal(err)
	}
	if err := rec.Start(); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	waitForFrames(t, rec, 1)
	rec.Stop()

	if rec.FrameCount() != 1 {
		t.Errorf("FrameCount() = %d, want 1", rec.FrameCount())
	}
}

func TestRecorderStopWithoutStart(t *testing.T) {
	rec := NewRecorder(newScriptedSource())
	rec.Stop() // must not panic or block
}

func TestRecorderStartFailure(t *testing.T) {
	source := &failingSource{}
	rec := NewRecorder(source)

	if err := rec.Start(); err == nil {
		t.Fatal("expected Start to fail")
	}
	if rec.Recording() {
		t.Error("Recording() = true after failed Start")
	}
}

type failingSource struct{}

func (failingSource) Start() error               { return errors.New("device busy") }
func (failingSource) ReadFrame() ([]int16, error) { return nil, errors.New("not started") }
func (failingSource) Stop() error                { return nil }
func (failingSource) Close() error               { return nil }

func TestRecorderClose(t *testing.T) {
	source := newScriptedSource([]int16{1})
	rec := NewRecorder(source)

	if err := rec.Start(); err != nil {
		t.Fatal(err)
	}
	waitForFrames(t, rec, 1)
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !source.closed {
		t.Error("Close did not release the source")
	}
}
