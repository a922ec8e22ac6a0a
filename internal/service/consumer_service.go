package service

import (
	"context"
	"encoding/json"

	"doc-voicebot-be/internal/dto"
	"doc-voicebot-be/internal/pkg/logger"
	"doc-voicebot-be/internal/repository/memory"
	"doc-voicebot-be/pkg/events"
	pktNats "doc-voicebot-be/pkg/nats"
	"doc-voicebot-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the embed-chunk topic: each message is one
// document chunk to embed and add to that document's vector index.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	docRepo        *memory.DocumentRepository
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	docRepo *memory.DocumentRepository,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		docRepo:        docRepo,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedChunkMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal embed job", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payload will never parse; don't retry
		return
	}

	index, ok := cs.docRepo.Index(payload.DocumentId)
	if !ok {
		cs.logger.Warn("ConsumerService", "Embed job for unknown document", map[string]interface{}{"document_id": payload.DocumentId})
		msg.Ack() // document deleted mid-ingest
		return
	}

	fragment := store.Fragment{
		ID:      payload.DocumentId,
		Ordinal: payload.Ordinal,
		Content: payload.Content,
	}
	if err := index.Add(fragment); err != nil {
		cs.logger.Error("ConsumerService", "Failed to embed chunk", map[string]interface{}{
			"document_id": payload.DocumentId,
			"ordinal":     payload.Ordinal,
			"error":       err.Error(),
		})
		cs.docRepo.MarkFailed(payload.DocumentId)
		msg.Ack()
		return
	}

	doc, ok := cs.docRepo.MarkChunkIndexed(payload.DocumentId)
	msg.Ack()

	if ok && doc.Status == store.DocumentStatusReady {
		cs.logger.Info("ConsumerService", "Document fully indexed", map[string]interface{}{
			"document_id": doc.ID,
			"chunks":      doc.ChunkCount,
		})
		if err := cs.eventPublisher.Publish(ctx, events.NewDocumentIndexed(doc.ID, doc.ChunkCount)); err != nil {
			cs.logger.Warn("ConsumerService", "Failed to publish indexed event", map[string]interface{}{"error": err.Error()})
		}
	}
}
