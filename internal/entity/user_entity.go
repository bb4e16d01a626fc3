package entity

import (
	"time"

	"github.com/google/uuid"
)

type Language string
type FarmingType string

const (
	LanguageEnglish Language = "english"
	LanguageHindi   Language = "hindi"
	LanguagePunjabi Language = "punjabi"

	FarmingTypeConventional FarmingType = "Conventional"
	FarmingTypeOrganic      FarmingType = "Organic"
	FarmingTypeMix          FarmingType = "Mix"
)

type FarmDetails struct {
	LandSize         string      `json:"landSize"`
	SoilType         string      `json:"soilType"`
	IrrigationSource string      `json:"irrigationSource"`
	FarmingType      FarmingType `json:"farmingType"`
}

type CropHistoryRecord struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	CropName  string
	Season    string
	Year      int
	Yield     string
	Notes     string
	CreatedAt time.Time
}

type User struct {
	Id           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Language     Language
	Location     string
	Crops        []string
	FarmDetails  FarmDetails
	CropHistory  []CropHistoryRecord
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
