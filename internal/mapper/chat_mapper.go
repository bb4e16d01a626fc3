package mapper

import (
	"agrisense-be/internal/entity"
	"agrisense-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}
	return &entity.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}
	return &model.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:            msg.Id,
		Sequence:      msg.Sequence,
		ChatSessionId: msg.ChatSessionId,
		Role:          entity.ChatRole(msg.Role),
		Content:       msg.Content,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:            msg.Id,
		Sequence:      msg.Sequence,
		ChatSessionId: msg.ChatSessionId,
		Role:          string(msg.Role),
		Content:       msg.Content,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessagesToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ChatMessageToEntity(msg)
	}
	return entities
}

// Turn Embedding Mappers

func (m *ChatMapper) ChatTurnEmbeddingToModel(e *entity.ChatTurnEmbedding) *model.ChatTurnEmbedding {
	if e == nil {
		return nil
	}
	return &model.ChatTurnEmbedding{
		Id:        e.Id,
		UserId:    e.UserId,
		Question:  e.Question,
		Answer:    e.Answer,
		Location:  e.Location,
		Embedding: pgvector.NewVector(e.Embedding),
		CreatedAt: e.CreatedAt,
	}
}

func (m *ChatMapper) ChatTurnEmbeddingToEntity(e *model.ChatTurnEmbedding) *entity.ChatTurnEmbedding {
	if e == nil {
		return nil
	}
	return &entity.ChatTurnEmbedding{
		Id:        e.Id,
		UserId:    e.UserId,
		Question:  e.Question,
		Answer:    e.Answer,
		Location:  e.Location,
		Embedding: e.Embedding.Slice(),
		CreatedAt: e.CreatedAt,
	}
}
