package unitofwork

import (
	"context"

	"agrisense-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CropHistoryRepository() contract.CropHistoryRepository
	FarmerRepository() contract.FarmerRepository

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ChatTurnEmbeddingRepository() contract.ChatTurnEmbeddingRepository
}
