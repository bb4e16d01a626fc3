package implementation

import (
	"context"

	"agrisense-be/internal/entity"
	"agrisense-be/internal/mapper"
	"agrisense-be/internal/repository/contract"

	"gorm.io/gorm"
)

type ChatTurnEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatTurnEmbeddingRepository(db *gorm.DB) contract.ChatTurnEmbeddingRepository {
	return &ChatTurnEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatTurnEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.ChatTurnEmbedding) error {
	return r.db.WithContext(ctx).Create(r.mapper.ChatTurnEmbeddingToModel(embedding)).Error
}
