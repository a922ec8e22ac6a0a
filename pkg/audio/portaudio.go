package audio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// MicrophoneSource reads frames from the default input device.
type MicrophoneSource struct {
	mu     sync.Mutex
	stream *portaudio.Stream
	buffer []int16
}

var _ FrameSource = &MicrophoneSource{}

// NewMicrophoneSource initializes portaudio. Call Close to release it.
func NewMicrophoneSource() (*MicrophoneSource, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}
	return &MicrophoneSource{
		buffer: make([]int16, FramesPerBuffer),
	}, nil
}

func (m *MicrophoneSource) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stream != nil {
		return nil
	}

	stream, err := portaudio.OpenDefaultStream(
		Channels,        // input channels
		0,               // output channels
		SampleRate,      // sample rate
		FramesPerBuffer, // frames per buffer
		m.buffer,
	)
	if err != nil {
		return fmt.Errorf("open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("start input stream: %w", err)
	}

	m.stream = stream
	return nil
}

func (m *MicrophoneSource) ReadFrame() ([]int16, error) {
	m.mu.Lock()
	stream := m.stream
	m.mu.Unlock()

	if stream == nil {
		return nil, fmt.Errorf("source not started")
	}
	if err := stream.Read(); err != nil {
		return nil, err
	}

	frame := make([]int16, len(m.buffer))
	copy(frame, m.buffer)
	return frame, nil
}

func (m *MicrophoneSource) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stream == nil {
		return nil
	}
	err := m.stream.Stop()
	m.stream.Close()
	m.stream = nil
	return err
}

func (m *MicrophoneSource) Close() error {
	m.Stop()
	return portaudio.Terminate()
}
