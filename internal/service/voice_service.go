package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"doc-voicebot-be/internal/dto"
	"doc-voicebot-be/internal/pkg/logger"
	"doc-voicebot-be/internal/pkg/serverutils"
	"doc-voicebot-be/internal/repository/memory"
	"doc-voicebot-be/internal/websocket"
	"doc-voicebot-be/pkg/speech"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IVoiceService interface {
	Ask(ctx context.Context, sessionID string, audio []byte) (*dto.VoiceAskResponse, error)
}

// voiceService runs the spoken question path: transcribe the uploaded
// recording, answer it through the chat pipeline, and speak the answer
// back. A per-session processing flag blocks overlapping submissions
// until the prior one completes, including on error.
type voiceService struct {
	mu          sync.Mutex
	sessionRepo *memory.SessionRepository
	chatService IChatService
	transcriber speech.Transcriber
	synthesizer speech.Synthesizer
	hub         *websocket.Hub
	uploadDir   string
	logger      logger.ILogger
}

func NewVoiceService(
	sessionRepo *memory.SessionRepository,
	chatService IChatService,
	transcriber speech.Transcriber,
	synthesizer speech.Synthesizer,
	hub *websocket.Hub,
	uploadDir string,
	log logger.ILogger,
) IVoiceService {
	return &voiceService{
		sessionRepo: sessionRepo,
		chatService: chatService,
		transcriber: transcriber,
		synthesizer: synthesizer,
		hub:         hub,
		uploadDir:   uploadDir,
		logger:      log,
	}
}

func (s *voiceService) Ask(ctx context.Context, sessionID string, audio []byte) (*dto.VoiceAskResponse, error) {
	session, ok := s.sessionRepo.Get(sessionID)
	if !ok {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "session not found or expired")
	}

	s.mu.Lock()
	if session.Processing {
		s.mu.Unlock()
		return nil, serverutils.NewApiError(fiber.StatusConflict, "a previous recording is still being processed")
	}
	session.Processing = true
	s.sessionRepo.Save(session)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		session.Processing = false
		s.sessionRepo.Save(session)
		s.mu.Unlock()
	}()

	// The recording is an opaque artifact from the client recorder;
	// it lives on disk only for the duration of transcription.
	tmpPath := filepath.Join(s.uploadDir, fmt.Sprintf("voice-%s.wav", uuid.New().String()))
	if err := os.WriteFile(tmpPath, audio, 0o600); err != nil {
		return nil, fmt.Errorf("store recording: %w", err)
	}
	defer os.Remove(tmpPath)

	s.hub.Broadcast(sessionID, websocket.EventTranscribing, nil)

	recognized, err := s.transcriber.TranscribeFile(ctx, tmpPath, session.LanguageCode)
	if err != nil {
		if errors.Is(err, speech.ErrNoSpeech) {
			s.hub.Broadcast(sessionID, websocket.EventError, map[string]interface{}{"reason": "not_understood"})
			return &dto.VoiceAskResponse{
				Outcome: dto.VoiceOutcomeNotUnderstood,
				Message: "Could not understand the audio. Please speak more clearly.",
			}, nil
		}
		s.logger.Error("VoiceService", "Speech recognition failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		s.hub.Broadcast(sessionID, websocket.EventError, map[string]interface{}{"reason": "service_error"})
		return &dto.VoiceAskResponse{
			Outcome: dto.VoiceOutcomeServiceError,
			Message: "Speech recognition service error. Please try again.",
		}, nil
	}

	s.hub.Broadcast(sessionID, websocket.EventTranscribed, map[string]interface{}{"text": recognized})
	s.hub.Broadcast(sessionID, websocket.EventAnswering, nil)

	answer, err := s.chatService.Ask(ctx, &dto.AskRequest{
		SessionId: sessionID,
		Query:     recognized,
	})
	if err != nil {
		s.hub.Broadcast(sessionID, websocket.EventError, map[string]interface{}{"reason": "answer_failed"})
		return nil, err
	}

	// Synthesis is an enhancement: the user already has the text
	// answer, so a TTS failure only costs the audio.
	var answerAudio string
	if mp3, err := s.synthesizer.Synthesize(ctx, answer.TranslatedAnswer, session.LanguageCode); err == nil {
		answerAudio = base64.StdEncoding.EncodeToString(mp3)
	} else {
		s.logger.Warn("VoiceService", "Speech synthesis failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	s.hub.Broadcast(sessionID, websocket.EventAnswered, map[string]interface{}{"text": answer.TranslatedAnswer})

	return &dto.VoiceAskResponse{
		Outcome:        dto.VoiceOutcomeRecognized,
		RecognizedText: recognized,
		Answer:         answer,
		AnswerAudio:    answerAudio,
	}, nil
}
