package events

import "time"

// Event is the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "CHAT_TURN_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a plain Event implementation.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes emitted by the application.
const (
	TypeChatTurnCompleted = "CHAT_TURN_COMPLETED"
	TypeDocumentIndexed   = "DOCUMENT_INDEXED"
)

// NewChatTurnCompleted describes one answered question in a session.
func NewChatTurnCompleted(sessionID, documentID, languageCode string) Event {
	return BaseEvent{
		Type: TypeChatTurnCompleted,
		Data: map[string]interface{}{
			"session_id":    sessionID,
			"document_id":   documentID,
			"language_code": languageCode,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentIndexed reports that a document finished ingestion.
func NewDocumentIndexed(documentID string, chunkCount int) Event {
	return BaseEvent{
		Type: TypeDocumentIndexed,
		Data: map[string]interface{}{
			"document_id": documentID,
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now(),
	}
}
