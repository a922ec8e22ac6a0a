package qa

import "github.com/google/uuid"

// NewSessionID returns a short opaque token for grouping one user's
// interaction: the first 8 hex characters of a random UUID. Not globally
// unique; display and in-process lookup only.
func NewSessionID() string {
	return uuid.New().String()[:8]
}
