package service

import (
	"context"
	"errors"

	"doc-voicebot-be/internal/repository/memory"
	"doc-voicebot-be/pkg/embedding"
	"doc-voicebot-be/pkg/llm"
	"doc-voicebot-be/pkg/qa"
	"doc-voicebot-be/pkg/store"
	"doc-voicebot-be/pkg/vectorstore"
)

// nopLogger satisfies logger.ILogger without producing output.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// unitEmbedder maps every text to the same unit vector, which is all
// retrieval needs when ranking is not under test.
type unitEmbedder struct{ err error }

func (u unitEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if u.err != nil {
		return nil, u.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1, 0}},
	}, nil
}

// stubLLM returns one canned answer.
type stubLLM struct {
	answer string
	err    error
}

func (s stubLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	return s.answer, s.err
}

func (s stubLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.answer, s.err
}

// echoTranslator marks text with the target language.
type echoTranslator struct{}

func (echoTranslator) Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error) {
	return "[" + targetLang + "]" + text, nil
}

var errLLMDown = errors.New("llm unavailable")

// readyDocument seeds a repo with an indexed, ready document.
func readyDocument(docRepo *memory.DocumentRepository, id string) {
	index := vectorstore.NewIndex(unitEmbedder{})
	index.Add(store.Fragment{Ordinal: 0, Content: "The refund window is 30 days."})
	docRepo.Save(&store.Document{
		ID:          id,
		Name:        "policy.txt",
		Format:      "txt",
		Status:      store.DocumentStatusReady,
		ChunkCount:  1,
		IndexedDone: 1,
	}, index)
}

func newTestGenerator(model llm.LLMProvider) *qa.Generator {
	return qa.NewGenerator(model, echoTranslator{}, nil)
}
