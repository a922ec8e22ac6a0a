package qa

import (
	"context"
	"fmt"
	"log"
	"strings"

	"doc-voicebot-be/pkg/llm"
	"doc-voicebot-be/pkg/store"
)

// Translator is the external translation capability. Implementations
// fail with an error when the service is unreachable; every caller in
// this package treats that as best-effort and keeps the original text.
type Translator interface {
	Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error)
}

// Retriever returns the most relevant document fragments for a query,
// at most its configured top-K, in deterministic rank order. An empty
// result is valid and yields an empty context block.
type Retriever interface {
	RelevantFragments(ctx context.Context, query string) ([]store.Fragment, error)
}

// AnswerResult is the outcome of one pipeline run. RawAnswer and
// ContextText are empty on the friendly short-circuit path.
type AnswerResult struct {
	TranslatedAnswer string `json:"translated_answer"`
	RawAnswer        string `json:"raw_answer"`
	ContextText      string `json:"context_text"`
}

const cannedGreeting = "Hello! How can I assist you today?"

// Generation temperature kept low to favor determinism over creativity.
const answerTemperature = 0.2

const promptTemplate = `You are a helpful assistant answering user questions based only on the document context and chat history.
Avoid using external knowledge. Do not guess if the context doesn't support the answer.

Previous Conversation:
%s

Question: %s
Context:
%s

Answer:`

// Generator ties translation, friendly classification, history
// formatting, retrieval and generation into the answer pipeline.
type Generator struct {
	llmProvider llm.LLMProvider
	translator  Translator
	logger      *log.Logger
}

// NewGenerator creates the answer pipeline around an LLM provider and a
// translator.
func NewGenerator(llmProvider llm.LLMProvider, translator Translator, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{
		llmProvider: llmProvider,
		translator:  translator,
		logger:      logger,
	}
}

// Answer runs the full pipeline for one query. Translation failures
// degrade to the untranslated text; retriever and LLM failures
// propagate to the caller.
func (g *Generator) Answer(ctx context.Context, query string, retriever Retriever, history []store.Turn, targetLang string) (*AnswerResult, error) {
	englishQuery := query
	if targetLang != "en" {
		if translated, err := g.translator.Translate(ctx, query, "en", "auto"); err == nil {
			englishQuery = translated
		} else {
			g.logger.Printf("query translation failed, using original: %v", err)
		}
	}

	if IsFriendly(englishQuery) {
		response := cannedGreeting
		if targetLang != "en" {
			if translated, err := g.translator.Translate(ctx, response, targetLang, "en"); err == nil {
				response = translated
			} else {
				g.logger.Printf("greeting translation failed, using english: %v", err)
			}
		}
		return &AnswerResult{TranslatedAnswer: response}, nil
	}

	historyBlock := FormatHistory(ctx, history, targetLang, g.translator)

	fragments, err := retriever.RelevantFragments(ctx, englishQuery)
	if err != nil {
		return nil, err
	}
	contextParts := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		contextParts = append(contextParts, fragment.Content)
	}
	contextText := strings.Join(contextParts, "\n\n")

	prompt := fmt.Sprintf(promptTemplate, strings.TrimSpace(historyBlock), englishQuery, contextText)

	rawAnswer, err := g.llmProvider.Generate(ctx, prompt, llm.WithTemperature(answerTemperature))
	if err != nil {
		return nil, err
	}
	rawAnswer = strings.TrimSpace(rawAnswer)

	translatedAnswer := rawAnswer
	if targetLang != "en" {
		if translated, err := g.translator.Translate(ctx, rawAnswer, targetLang, "en"); err == nil {
			translatedAnswer = translated
		} else {
			g.logger.Printf("answer translation failed, using english: %v", err)
		}
	}

	return &AnswerResult{
		TranslatedAnswer: translatedAnswer,
		RawAnswer:        rawAnswer,
		ContextText:      contextText,
	}, nil
}
