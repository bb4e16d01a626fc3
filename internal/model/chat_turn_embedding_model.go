package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type ChatTurnEmbedding struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Question  string          `gorm:"type:text;not null"`
	Answer    string          `gorm:"type:text;not null"`
	Location  string          `gorm:"type:text"`
	Embedding pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text and text-embedding-004 are both 768-d
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (ChatTurnEmbedding) TableName() string {
	return "chat_turn_embeddings"
}
