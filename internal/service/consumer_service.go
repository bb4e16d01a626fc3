package service

import (
	"context"
	"encoding/json"
	"strings"

	"agrisense-be/internal/dto"
	"agrisense-be/internal/entity"
	"agrisense-be/internal/pkg/logger"
	"agrisense-be/internal/repository/unitofwork"
	"agrisense-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	// Consume subscribes to the index topic and processes jobs until ctx is cancelled.
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            log,
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

// processMessage always acks: indexing is at-most-once and a failed job is dropped.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var job dto.IndexChatTurnMessage
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		cs.logger.Error("INDEXER", "Dropping malformed index job", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}
	if strings.TrimSpace(job.Question) == "" {
		cs.logger.Warn("INDEXER", "Dropping index job without question", map[string]interface{}{"message_id": msg.UUID})
		return
	}

	vector, err := cs.embeddingProvider.Embed(ctx, job.Question, embedding.TaskRetrievalDocument)
	if err != nil {
		cs.logger.Error("INDEXER", "Failed to embed chat turn", map[string]interface{}{
			"user_id": job.UserId.String(),
			"error":   err.Error(),
		})
		return
	}
	if len(vector) != embedding.Dimensions {
		cs.logger.Error("INDEXER", "Embedding has unexpected dimensions", map[string]interface{}{
			"user_id":  job.UserId.String(),
			"got":      len(vector),
			"expected": embedding.Dimensions,
		})
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	err = uow.ChatTurnEmbeddingRepository().Create(ctx, &entity.ChatTurnEmbedding{
		UserId:    job.UserId,
		Question:  job.Question,
		Answer:    job.Answer,
		Location:  job.Location,
		Embedding: vector,
	})
	if err != nil {
		cs.logger.Error("INDEXER", "Failed to store chat turn embedding", map[string]interface{}{
			"user_id": job.UserId.String(),
			"error":   err.Error(),
		})
		return
	}

	cs.logger.Info("INDEXER", "Chat turn indexed", map[string]interface{}{"user_id": job.UserId.String()})
}
