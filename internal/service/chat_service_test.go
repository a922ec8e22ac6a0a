package service

import (
	"context"
	"testing"

	"doc-voicebot-be/internal/dto"
	"doc-voicebot-be/internal/pkg/serverutils"
	"doc-voicebot-be/internal/repository/memory"
	"doc-voicebot-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatFixture(t *testing.T, model stubLLM) (IChatService, *memory.SessionRepository, *memory.DocumentRepository) {
	t.Helper()
	sessionRepo := memory.NewSessionRepository()
	docRepo := memory.NewDocumentRepository()
	readyDocument(docRepo, "doc-1")
	svc := NewChatService(sessionRepo, docRepo, newTestGenerator(model), nil, nopLogger{})
	return svc, sessionRepo, docRepo
}

func TestCreateSession(t *testing.T) {
	svc, sessionRepo, _ := newChatFixture(t, stubLLM{answer: "ok"})

	res, err := svc.CreateSession(context.Background(), &dto.CreateSessionRequest{
		Language:   "Spanish",
		DocumentId: "doc-1",
	})
	require.NoError(t, err)

	assert.Len(t, res.SessionId, 8)
	assert.Equal(t, "es", res.LanguageCode)
	assert.Equal(t, "doc-1", res.DocumentId)

	stored, ok := sessionRepo.Get(res.SessionId)
	require.True(t, ok)
	assert.Empty(t, stored.History)
}

func TestCreateSessionUnknownLanguageDefaultsToEnglish(t *testing.T) {
	svc, _, _ := newChatFixture(t, stubLLM{answer: "ok"})

	res, err := svc.CreateSession(context.Background(), &dto.CreateSessionRequest{
		Language:   "Klingon",
		DocumentId: "doc-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "en", res.LanguageCode)
}

func TestCreateSessionUnknownDocument(t *testing.T) {
	svc, _, _ := newChatFixture(t, stubLLM{answer: "ok"})

	_, err := svc.CreateSession(context.Background(), &dto.CreateSessionRequest{
		Language:   "English",
		DocumentId: "missing",
	})
	var apiErr *serverutils.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, fiber.StatusNotFound, apiErr.Status)
}

func TestAskAppendsTurnOnSuccess(t *testing.T) {
	svc, sessionRepo, _ := newChatFixture(t, stubLLM{answer: "Thirty days."})

	created, err := svc.CreateSession(context.Background(), &dto.CreateSessionRequest{
		Language:   "English",
		DocumentId: "doc-1",
	})
	require.NoError(t, err)

	res, err := svc.Ask(context.Background(), &dto.AskRequest{
		SessionId: created.SessionId,
		Query:     "what is the refund window",
	})
	require.NoError(t, err)

	assert.Equal(t, "Thirty days.", res.TranslatedAnswer)
	assert.Equal(t, "Thirty days.", res.RawAnswer)
	assert.Contains(t, res.ContextText, "refund window")

	session, _ := sessionRepo.Get(created.SessionId)
	require.Len(t, session.History, 1)
	assert.Equal(t, "what is the refund window", session.History[0].Query)
	assert.Equal(t, "Thirty days.", session.History[0].Response)
}

func TestAskFailureLeavesHistoryUntouched(t *testing.T) {
	svc, sessionRepo, _ := newChatFixture(t, stubLLM{err: errLLMDown})

	created, err := svc.CreateSession(context.Background(), &dto.CreateSessionRequest{
		Language:   "English",
		DocumentId: "doc-1",
	})
	require.NoError(t, err)

	_, err = svc.Ask(context.Background(), &dto.AskRequest{
		SessionId: created.SessionId,
		Query:     "what is the refund window",
	})
	require.ErrorIs(t, err, errLLMDown)

	session, _ := sessionRepo.Get(created.SessionId)
	assert.Empty(t, session.History, "a failed turn must not enter the history")
}

func TestAskUnknownSession(t *testing.T) {
	svc, _, _ := newChatFixture(t, stubLLM{answer: "ok"})

	_, err := svc.Ask(context.Background(), &dto.AskRequest{SessionId: "nope", Query: "q"})
	var apiErr *serverutils.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, fiber.StatusNotFound, apiErr.Status)
}

func TestAskWhileDocumentStillIndexing(t *testing.T) {
	sessionRepo := memory.NewSessionRepository()
	docRepo := memory.NewDocumentRepository()
	docRepo.Save(&store.Document{
		ID:         "doc-slow",
		Status:     store.DocumentStatusProcessing,
		ChunkCount: 10,
	}, nil)
	sessionRepo.Save(&store.Session{ID: "sess1234", LanguageCode: "en", DocumentID: "doc-slow"})

	svc := NewChatService(sessionRepo, docRepo, newTestGenerator(stubLLM{answer: "ok"}), nil, nopLogger{})

	_, err := svc.Ask(context.Background(), &dto.AskRequest{SessionId: "sess1234", Query: "q"})
	var apiErr *serverutils.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, fiber.StatusConflict, apiErr.Status)
}

func TestGetHistory(t *testing.T) {
	svc, sessionRepo, _ := newChatFixture(t, stubLLM{answer: "ok"})
	sessionRepo.Save(&store.Session{
		ID:           "hist1234",
		LanguageCode: "en",
		DocumentID:   "doc-1",
		History: []store.Turn{
			{Query: "q1", Response: "a1"},
			{Query: "q2", Response: "a2"},
		},
	})

	res, err := svc.GetHistory(context.Background(), "hist1234")
	require.NoError(t, err)
	require.Len(t, res.Turns, 2)
	assert.Equal(t, "q1", res.Turns[0].Query)
	assert.Equal(t, "a2", res.Turns[1].Response)
}

func TestDeleteSession(t *testing.T) {
	svc, sessionRepo, _ := newChatFixture(t, stubLLM{answer: "ok"})
	sessionRepo.Save(&store.Session{ID: "gone1234"})

	require.NoError(t, svc.DeleteSession(context.Background(), "gone1234"))
	_, ok := sessionRepo.Get("gone1234")
	assert.False(t, ok)
}
