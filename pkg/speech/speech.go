// Package speech wraps the external speech-to-text and text-to-speech
// capabilities.
package speech

import (
	"context"
	"errors"
)

// ErrNoSpeech means the audio was received but no speech could be
// understood. It is an expected outcome, distinct from a service
// failure: the caller should ask the user to speak more clearly rather
// than report an error.
var ErrNoSpeech = errors.New("no speech could be understood")

// Transcriber converts a recorded WAV file into text for an explicit
// language code. Outcomes are three-way: text, ErrNoSpeech, or a
// service error.
type Transcriber interface {
	TranscribeFile(ctx context.Context, path string, languageCode string) (string, error)
}

// Synthesizer renders text in a language to an MP3 byte stream.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, languageCode string) ([]byte, error)
}
