package dto

type UploadDocumentResponse struct {
	DocumentId string `json:"document_id"`
	Name       string `json:"name"`
	Format     string `json:"format"`
	Status     string `json:"status"`
	ChunkCount int    `json:"chunk_count"`
}

type DocumentStatusResponse struct {
	DocumentId  string `json:"document_id"`
	Status      string `json:"status"`
	ChunkCount  int    `json:"chunk_count"`
	IndexedDone int    `json:"indexed_done"`
}

// PublishEmbedChunkMessage is the payload carried on the embed topic:
// one message per document chunk.
type PublishEmbedChunkMessage struct {
	DocumentId string `json:"document_id"`
	Ordinal    int    `json:"ordinal"`
	Content    string `json:"content"`
}
