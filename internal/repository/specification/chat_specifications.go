package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}

// InsertionOrder sorts rows by their auto-increment sequence.
type InsertionOrder struct {
	Desc bool
}

func (s InsertionOrder) Apply(db *gorm.DB) *gorm.DB {
	return OrderBy{Field: "sequence", Desc: s.Desc}.Apply(db)
}
