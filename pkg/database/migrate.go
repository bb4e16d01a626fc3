package database

import (
	"agrisense-be/internal/model"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.CropHistoryRecord{},
		&model.Farmer{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.ChatTurnEmbedding{},
	}
}

// AutoMigrate creates or updates all tables. Postgres needs the vector extension first.
func AutoMigrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS vector;`).Error; err != nil {
			return err
		}
	}
	return db.AutoMigrate(Models()...)
}
