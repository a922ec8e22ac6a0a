// Package audio provides microphone capture for the voice input path.
package audio

import (
	"sync"
	"time"
)

// FrameSource delivers fixed-size frames of 16-bit PCM samples.
// The portaudio microphone is the production implementation.
type FrameSource interface {
	Start() error
	// ReadFrame blocks until one frame is available and returns a
	// copy the caller owns.
	ReadFrame() ([]int16, error)
	Stop() error
	Close() error
}

// Recorder pulls frames from a source on a background goroutine until
// stopped. Exactly two goroutines interact: the control goroutine flips
// the stop flag and joins; only the capture goroutine appends frames.
type Recorder struct {
	mu      sync.Mutex
	source  FrameSource
	frames  [][]int16
	running bool
	done    chan struct{}
}

func NewRecorder(source FrameSource) *Recorder {
	return &Recorder{source: source}
}

// Start begins capture. Frames accumulate until Stop.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return nil
	}

	if err := r.source.Start(); err != nil {
		return err
	}

	r.frames = nil
	r.running = true
	r.done = make(chan struct{})

	go r.recordLoop()
	return nil
}

// Stop requests the capture loop to exit and blocks until it has.
// The source is stopped first so a blocking read wakes up; a read that
// already returned a frame keeps it, so no captured audio is lost at
// the stop boundary.
func (r *Recorder) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	done := r.done
	r.mu.Unlock()

	r.source.Stop()
	<-done
}

// Recording reports whether the capture loop is active.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// FrameCount returns the number of captured frames so far.
func (r *Recorder) FrameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Samples concatenates all captured frames.
func (r *Recorder) Samples() []int16 {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, frame := range r.frames {
		total += len(frame)
	}
	samples := make([]int16, 0, total)
	for _, frame := range r.frames {
		samples = append(samples, frame...)
	}
	return samples
}

// Save writes the captured audio as a WAV file.
func (r *Recorder) Save(path string) error {
	return WriteWAV(path, r.Samples())
}

// Close releases the underlying source.
func (r *Recorder) Close() error {
	r.Stop()
	return r.source.Close()
}

func (r *Recorder) recordLoop() {
	defer close(r.done)

	for {
		r.mu.Lock()
		running := r.running
		r.mu.Unlock()
		if !running {
			return
		}

		frame, err := r.source.ReadFrame()
		if err != nil {
			r.mu.Lock()
			running = r.running
			r.mu.Unlock()
			if !running {
				return
			}
			time.Sleep(10 * time.Millisecond)
			continue
		}

		// The frame was read before the loop observed any stop
		// request, so it is always kept.
		r.mu.Lock()
		r.frames = append(r.frames, frame)
		r.mu.Unlock()
	}
}
