package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type FarmerCrop struct {
	Name       string     `json:"name"`
	Area       float64    `json:"area"`
	SowingDate *time.Time `json:"sowingDate,omitempty"`
}

type Farmer struct {
	Id        uuid.UUID                       `gorm:"type:uuid;primaryKey"`
	Name      string                          `gorm:"type:varchar(255);not null"`
	Phone     string                          `gorm:"type:varchar(32);uniqueIndex;not null"`
	Language  string                          `gorm:"type:varchar(20);not null;default:'en'"`
	Location  string                          `gorm:"type:text"`
	Crops     datatypes.JSONSlice[FarmerCrop] // JSONB on postgres
	CreatedAt time.Time                       `gorm:"autoCreateTime"`
}

func (Farmer) TableName() string {
	return "farmers"
}
