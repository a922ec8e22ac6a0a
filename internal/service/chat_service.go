package service

import (
	"context"

	"doc-voicebot-be/internal/dto"
	"doc-voicebot-be/internal/pkg/logger"
	"doc-voicebot-be/internal/pkg/serverutils"
	"doc-voicebot-be/internal/repository/memory"
	"doc-voicebot-be/pkg/events"
	pktNats "doc-voicebot-be/pkg/nats"
	"doc-voicebot-be/pkg/qa"
	"doc-voicebot-be/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type IChatService interface {
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
	GetHistory(ctx context.Context, sessionID string) (*dto.GetHistoryResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type chatService struct {
	sessionRepo    *memory.SessionRepository
	docRepo        *memory.DocumentRepository
	generator      *qa.Generator
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewChatService(
	sessionRepo *memory.SessionRepository,
	docRepo *memory.DocumentRepository,
	generator *qa.Generator,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessionRepo:    sessionRepo,
		docRepo:        docRepo,
		generator:      generator,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *chatService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	if _, ok := s.docRepo.Get(req.DocumentId); !ok {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "document not found")
	}

	session := &store.Session{
		ID:           qa.NewSessionID(),
		LanguageCode: qa.ResolveLanguage(req.Language),
		DocumentID:   req.DocumentId,
	}
	s.sessionRepo.Save(session)

	s.logger.Info("ChatService", "Session created", map[string]interface{}{
		"session_id":    session.ID,
		"language_code": session.LanguageCode,
		"document_id":   session.DocumentID,
	})

	return &dto.CreateSessionResponse{
		SessionId:    session.ID,
		LanguageCode: session.LanguageCode,
		DocumentId:   session.DocumentID,
	}, nil
}

// Ask runs the QA pipeline for one query and, on success, appends the
// turn to the session history. Any failure leaves the history exactly
// as it was.
func (s *chatService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	session, ok := s.sessionRepo.Get(req.SessionId)
	if !ok {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "session not found or expired")
	}

	doc, ok := s.docRepo.Get(session.DocumentID)
	if !ok {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "document not found")
	}
	if doc.Status != store.DocumentStatusReady {
		return nil, serverutils.NewApiError(fiber.StatusConflict, "document is still being indexed")
	}

	index, ok := s.docRepo.Index(session.DocumentID)
	if !ok {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "document index not found")
	}

	result, err := s.generator.Answer(ctx, req.Query, index, session.History, session.LanguageCode)
	if err != nil {
		return nil, err
	}

	// History keeps the answer the user actually saw.
	session.History = append(session.History, store.Turn{
		Query:    req.Query,
		Response: result.TranslatedAnswer,
	})
	s.sessionRepo.Save(session)

	if err := s.eventPublisher.Publish(ctx, events.NewChatTurnCompleted(session.ID, session.DocumentID, session.LanguageCode)); err != nil {
		s.logger.Warn("ChatService", "Failed to publish turn event", map[string]interface{}{"error": err.Error()})
	}

	return &dto.AskResponse{
		SessionId:        session.ID,
		Query:            req.Query,
		TranslatedAnswer: result.TranslatedAnswer,
		RawAnswer:        result.RawAnswer,
		ContextText:      result.ContextText,
	}, nil
}

func (s *chatService) GetHistory(ctx context.Context, sessionID string) (*dto.GetHistoryResponse, error) {
	session, ok := s.sessionRepo.Get(sessionID)
	if !ok {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "session not found or expired")
	}

	turns := make([]dto.HistoryTurn, 0, len(session.History))
	for _, turn := range session.History {
		turns = append(turns, dto.HistoryTurn{Query: turn.Query, Response: turn.Response})
	}
	return &dto.GetHistoryResponse{
		SessionId: session.ID,
		Turns:     turns,
	}, nil
}

func (s *chatService) DeleteSession(ctx context.Context, sessionID string) error {
	s.sessionRepo.Delete(sessionID)
	return nil
}
