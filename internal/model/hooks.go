package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ids are generated in Go so the same schema works on postgres and sqlite.

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	ensureID(&u.Id)
	return nil
}

func (r *CropHistoryRecord) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.Id)
	return nil
}

func (f *Farmer) BeforeCreate(tx *gorm.DB) error {
	ensureID(&f.Id)
	return nil
}

func (s *ChatSession) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.Id)
	return nil
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.Id)
	return nil
}

func (e *ChatTurnEmbedding) BeforeCreate(tx *gorm.DB) error {
	ensureID(&e.Id)
	return nil
}
