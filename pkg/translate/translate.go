// Package translate wraps the external machine-translation capability.
// Callers treat it as best-effort: every consumer in the QA pipeline
// falls back to the untranslated text when it fails.
package translate

import (
	"context"
	"fmt"
)

// Translator converts text into a target language, auto-detecting the
// source when sourceLang is "auto". It returns a new string and never
// mutates its input.
type Translator interface {
	Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error)
}

// ServiceError signals that the external translation service was
// unreachable or rejected the request.
type ServiceError struct {
	Reason string
	Err    error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("translation service: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("translation service: %s", e.Reason)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
