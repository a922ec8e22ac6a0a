package vectorstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"doc-voicebot-be/pkg/embedding"
	"doc-voicebot-be/pkg/store"
)

// TopK is the fixed number of fragments a retriever returns at most.
const TopK = 5

// Index is an in-memory vector index over one document's fragments.
// Fragments are appended during ingestion and read-only afterwards.
type Index struct {
	mu        sync.RWMutex
	fragments []indexedFragment
	provider  embedding.EmbeddingProvider
}

type indexedFragment struct {
	fragment store.Fragment
	vector   []float32
}

func NewIndex(provider embedding.EmbeddingProvider) *Index {
	return &Index{
		provider: provider,
	}
}

// Add embeds one fragment and stores it.
func (x *Index) Add(fragment store.Fragment) error {
	res, err := x.provider.Generate(fragment.Content, embedding.TaskDocument)
	if err != nil {
		return fmt.Errorf("embed fragment %d: %w", fragment.Ordinal, err)
	}

	x.mu.Lock()
	x.fragments = append(x.fragments, indexedFragment{
		fragment: fragment,
		vector:   res.Embedding.Values,
	})
	x.mu.Unlock()
	return nil
}

// Len returns the number of indexed fragments.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.fragments)
}

// RelevantFragments returns the TopK highest-scoring fragments for the
// query by cosine similarity, score descending with insertion order as
// the tie-break so ranking is deterministic.
func (x *Index) RelevantFragments(ctx context.Context, query string) ([]store.Fragment, error) {
	res, err := x.provider.Generate(query, embedding.TaskQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	queryVec := res.Embedding.Values

	x.mu.RLock()
	scored := make([]store.Fragment, 0, len(x.fragments))
	for _, entry := range x.fragments {
		f := entry.fragment
		f.Score = cosineSimilarity(queryVec, entry.vector)
		scored = append(scored, f)
	}
	x.mu.RUnlock()

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > TopK {
		scored = scored[:TopK]
	}
	return scored, nil
}

// cosineSimilarity assumes both vectors are unit length, so the dot
// product is the similarity. Mismatched dimensions score zero.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return float32(dot)
}
