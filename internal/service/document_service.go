package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"doc-voicebot-be/internal/dto"
	"doc-voicebot-be/internal/pkg/logger"
	"doc-voicebot-be/internal/pkg/serverutils"
	"doc-voicebot-be/internal/repository/memory"
	"doc-voicebot-be/pkg/docloader"
	"doc-voicebot-be/pkg/embedding"
	"doc-voicebot-be/pkg/store"
	"doc-voicebot-be/pkg/textsplitter"
	"doc-voicebot-be/pkg/vectorstore"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, fileName string, data []byte) (*dto.UploadDocumentResponse, error)
	Status(ctx context.Context, documentID string) (*dto.DocumentStatusResponse, error)
}

type documentService struct {
	docRepo           *memory.DocumentRepository
	embeddingProvider embedding.EmbeddingProvider
	pubSub            *gochannel.GoChannel
	topicName         string
	uploadDir         string
	logger            logger.ILogger
}

func NewDocumentService(
	docRepo *memory.DocumentRepository,
	embeddingProvider embedding.EmbeddingProvider,
	pubSub *gochannel.GoChannel,
	topicName string,
	uploadDir string,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		docRepo:           docRepo,
		embeddingProvider: embeddingProvider,
		pubSub:            pubSub,
		topicName:         topicName,
		uploadDir:         uploadDir,
		logger:            log,
	}
}

// Upload parses the document, splits it into chunks and queues one
// embed job per chunk. The document stays in "processing" until the
// consumer has indexed every chunk.
func (s *documentService) Upload(ctx context.Context, fileName string, data []byte) (*dto.UploadDocumentResponse, error) {
	format, err := docloader.Format(fileName)
	if err != nil {
		return nil, serverutils.NewApiError(fiber.StatusUnprocessableEntity, err.Error())
	}

	docID := uuid.New().String()

	// The loaders work from a path; keep the upload as a transient
	// file and remove it once the text is out.
	tmpPath := filepath.Join(s.uploadDir, fmt.Sprintf("upload-%s%s", docID, filepath.Ext(fileName)))
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	defer os.Remove(tmpPath)

	text, err := docloader.Load(tmpPath)
	if err != nil {
		return nil, serverutils.NewApiError(fiber.StatusUnprocessableEntity, err.Error())
	}

	chunks := textsplitter.Split(text, textsplitter.DefaultChunkSize, textsplitter.DefaultOverlap)

	doc := &store.Document{
		ID:         docID,
		Name:       fileName,
		Format:     format,
		Status:     store.DocumentStatusProcessing,
		ChunkCount: len(chunks),
	}
	index := vectorstore.NewIndex(s.embeddingProvider)
	s.docRepo.Save(doc, index)

	for i, chunk := range chunks {
		payload, err := json.Marshal(dto.PublishEmbedChunkMessage{
			DocumentId: docID,
			Ordinal:    i,
			Content:    chunk,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal embed job: %w", err)
		}
		msg := message.NewMessage(uuid.New().String(), payload)
		if err := s.pubSub.Publish(s.topicName, msg); err != nil {
			return nil, fmt.Errorf("publish embed job: %w", err)
		}
	}

	s.logger.Info("DocumentService", "Document queued for indexing", map[string]interface{}{
		"document_id": docID,
		"format":      format,
		"chunks":      len(chunks),
	})

	return &dto.UploadDocumentResponse{
		DocumentId: docID,
		Name:       fileName,
		Format:     format,
		Status:     doc.Status,
		ChunkCount: len(chunks),
	}, nil
}

func (s *documentService) Status(ctx context.Context, documentID string) (*dto.DocumentStatusResponse, error) {
	doc, ok := s.docRepo.Get(documentID)
	if !ok {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "document not found")
	}
	return &dto.DocumentStatusResponse{
		DocumentId:  doc.ID,
		Status:      doc.Status,
		ChunkCount:  doc.ChunkCount,
		IndexedDone: doc.IndexedDone,
	}, nil
}
