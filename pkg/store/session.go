package store

// Turn is one completed question/answer exchange in a session.
type Turn struct {
	Query    string `json:"query"`
	Response string `json:"response"`
}

// Fragment is one retrievable piece of an uploaded document.
type Fragment struct {
	ID       string                 `json:"id"`
	Ordinal  int                    `json:"ordinal"`
	Content  string                 `json:"content"`
	Score    float32                `json:"score"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Document tracks an uploaded document through ingestion.
type Document struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Format      string `json:"format"` // "pdf" | "txt" | "docx"
	Status      string `json:"status"` // "processing" | "ready" | "failed"
	ChunkCount  int    `json:"chunk_count"`
	IndexedDone int    `json:"indexed_done"`
}

// Session represents the active user session state in memory.
// History is append-only; only the most recent turns are ever read.
type Session struct {
	ID           string `json:"id"`
	LanguageCode string `json:"language_code"`
	DocumentID   string `json:"document_id"`
	History      []Turn `json:"history"`

	// Guards against overlapping voice submissions while a prior
	// recording is still being transcribed.
	Processing bool `json:"processing"`
}

const (
	DocumentStatusProcessing = "processing"
	DocumentStatusReady      = "ready"
	DocumentStatusFailed     = "failed"
)
