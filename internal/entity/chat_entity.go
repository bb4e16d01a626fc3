package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatSession is the single conversation a user owns.
type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ChatMessage struct {
	Id            uuid.UUID
	Sequence      int64
	ChatSessionId uuid.UUID
	Role          ChatRole
	Content       string
	CreatedAt     time.Time
}

type ChatTurnEmbedding struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Question  string
	Answer    string
	Location  string
	Embedding []float32
	CreatedAt time.Time
}
