package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

type ChatResponse struct {
	Response     string  `json:"response"`
	ContextsUsed int     `json:"contexts_used"`
	Audio        *string `json:"audio"`
}

type ChatMessageDTO struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatHistoryResponse struct {
	Messages []ChatMessageDTO `json:"messages"`
}

// IndexChatTurnMessage is the payload of the turn indexing topic.
type IndexChatTurnMessage struct {
	UserId   uuid.UUID `json:"user_id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	Location string    `json:"location"`
}
