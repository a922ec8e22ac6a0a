package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"doc-voicebot-be/internal/dto"
	"doc-voicebot-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatServiceStub struct {
	createErr error
	askErr    error
	lastAsk   *dto.AskRequest
}

func (s *chatServiceStub) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &dto.CreateSessionResponse{SessionId: "ab12cd34", LanguageCode: "es", DocumentId: req.DocumentId}, nil
}

func (s *chatServiceStub) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	s.lastAsk = req
	if s.askErr != nil {
		return nil, s.askErr
	}
	return &dto.AskResponse{SessionId: req.SessionId, Query: req.Query, TranslatedAnswer: "answer"}, nil
}

func (s *chatServiceStub) GetHistory(ctx context.Context, sessionID string) (*dto.GetHistoryResponse, error) {
	return &dto.GetHistoryResponse{SessionId: sessionID}, nil
}

func (s *chatServiceStub) DeleteSession(ctx context.Context, sessionID string) error { return nil }

func newChatApp(stub *chatServiceStub) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewChatController(stub).RegisterRoutes(app.Group("/api"))
	return app
}

func TestCreateSessionEndpoint(t *testing.T) {
	app := newChatApp(&chatServiceStub{})

	body, _ := json.Marshal(dto.CreateSessionRequest{Language: "Spanish", DocumentId: "doc-1"})
	req := httptest.NewRequest("POST", "/api/chat/v1/session", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCreateSessionEndpointValidation(t *testing.T) {
	app := newChatApp(&chatServiceStub{})

	// document_id is required.
	req := httptest.NewRequest("POST", "/api/chat/v1/session", bytes.NewReader([]byte(`{"language":"Spanish"}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAskEndpointMapsServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "api error keeps its status",
			serviceErr: serverutils.NewApiError(fiber.StatusNotFound, "session not found or expired"),
			wantStatus: fiber.StatusNotFound,
		},
		{
			name:       "conflict while indexing",
			serviceErr: serverutils.NewApiError(fiber.StatusConflict, "document is still being indexed"),
			wantStatus: fiber.StatusConflict,
		},
		{
			name:       "unclassified error becomes 500",
			serviceErr: errors.New("llm unavailable"),
			wantStatus: fiber.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newChatApp(&chatServiceStub{askErr: tt.serviceErr})

			body, _ := json.Marshal(dto.AskRequest{SessionId: "ab12cd34", Query: "q"})
			req := httptest.NewRequest("POST", "/api/chat/v1/ask", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestAskEndpointPassesRequestThrough(t *testing.T) {
	stub := &chatServiceStub{}
	app := newChatApp(stub)

	body, _ := json.Marshal(dto.AskRequest{SessionId: "ab12cd34", Query: "what is covered"})
	req := httptest.NewRequest("POST", "/api/chat/v1/ask", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NotNil(t, stub.lastAsk)
	assert.Equal(t, "what is covered", stub.lastAsk.Query)
}
