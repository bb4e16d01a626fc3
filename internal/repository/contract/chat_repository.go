package contract

import (
	"context"

	"agrisense-be/internal/entity"
	"agrisense-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	// Ensure returns the user's session, inserting it first if absent. Safe under concurrent callers.
	Ensure(ctx context.Context, userId uuid.UUID) (*entity.ChatSession, error)
	Touch(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
}

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type ChatTurnEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.ChatTurnEmbedding) error
}
