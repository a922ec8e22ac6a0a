package memory

import (
	"sync"

	"doc-voicebot-be/pkg/store"
	"doc-voicebot-be/pkg/vectorstore"
)

// DocumentRepository tracks uploaded documents and their vector
// indexes for the life of the process.
type DocumentRepository struct {
	mu      sync.RWMutex
	docs    map[string]*store.Document
	indexes map[string]*vectorstore.Index
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{
		docs:    make(map[string]*store.Document),
		indexes: make(map[string]*vectorstore.Index),
	}
}

func (r *DocumentRepository) Save(doc *store.Document, index *vectorstore.Index) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = doc
	r.indexes[doc.ID] = index
}

func (r *DocumentRepository) Get(documentID string) (*store.Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[documentID]
	return doc, ok
}

func (r *DocumentRepository) Index(documentID string) (*vectorstore.Index, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	index, ok := r.indexes[documentID]
	return index, ok
}

// MarkChunkIndexed bumps the indexed counter and flips the document to
// ready once every chunk is in. Returns the updated document.
func (r *DocumentRepository) MarkChunkIndexed(documentID string) (*store.Document, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[documentID]
	if !ok {
		return nil, false
	}
	doc.IndexedDone++
	if doc.IndexedDone >= doc.ChunkCount {
		doc.Status = store.DocumentStatusReady
	}
	return doc, true
}

func (r *DocumentRepository) MarkFailed(documentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc, ok := r.docs[documentID]; ok {
		doc.Status = store.DocumentStatusFailed
	}
}

func (r *DocumentRepository) Delete(documentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, documentID)
	delete(r.indexes, documentID)
}
