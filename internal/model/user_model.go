package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type FarmDetails struct {
	LandSize         string `json:"landSize"`
	SoilType         string `json:"soilType"`
	IrrigationSource string `json:"irrigationSource"`
	FarmingType      string `json:"farmingType"`
}

type User struct {
	Id           uuid.UUID                       `gorm:"type:uuid;primaryKey"`
	Name         string                          `gorm:"type:varchar(255);not null"`
	Email        string                          `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string                          `gorm:"type:varchar(255);not null"`
	Language     string                          `gorm:"type:varchar(20);not null;default:'english'"`
	Location     string                          `gorm:"type:text"`
	Crops        datatypes.JSONSlice[string]     // JSONB on postgres
	FarmDetails  datatypes.JSONType[FarmDetails] // JSONB on postgres
	Version      int                             `gorm:"not null;default:0"`
	CreatedAt    time.Time                       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time                       `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

type CropHistoryRecord struct {
	Sequence  int64     `gorm:"primaryKey;autoIncrement"`
	Id        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	CropName  string    `gorm:"type:varchar(255)"`
	Season    string    `gorm:"type:varchar(100)"`
	Year      int
	Yield     string    `gorm:"type:varchar(100)"`
	Notes     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (CropHistoryRecord) TableName() string {
	return "crop_history_records"
}
