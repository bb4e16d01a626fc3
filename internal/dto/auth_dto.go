package dto

import (
	"time"

	"github.com/google/uuid"
)

type SignupRequest struct {
	Name     string `json:"name" validate:"max=120"`
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password"`
	Location string `json:"location" validate:"max=200"`
	Language string `json:"language" validate:"omitempty,oneof=english hindi punjabi"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSummary is the short user shape returned with a token.
type UserSummary struct {
	Id       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Location string    `json:"location"`
	Language string    `json:"language"`
}

type AuthResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserSummary `json:"user"`
}

type FarmDetailsDTO struct {
	LandSize         string `json:"landSize" validate:"max=100"`
	SoilType         string `json:"soilType" validate:"max=100"`
	IrrigationSource string `json:"irrigationSource" validate:"max=100"`
	FarmingType      string `json:"farmingType" validate:"omitempty,oneof=Conventional Organic Mix"`
}

type CropHistoryDTO struct {
	Id        uuid.UUID `json:"id"`
	CropName  string    `json:"cropName"`
	Season    string    `json:"season"`
	Year      int       `json:"year"`
	Yield     string    `json:"yield"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserProfileResponse never carries the password hash.
type UserProfileResponse struct {
	Id          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Language    string           `json:"language"`
	Location    string           `json:"location"`
	Crops       []string         `json:"crops"`
	FarmDetails FarmDetailsDTO   `json:"farmDetails"`
	CropHistory []CropHistoryDTO `json:"cropHistory"`
	Version     int              `json:"version"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// UpdateProfileRequest replaces all three fields; omitted fields are cleared.
type UpdateProfileRequest struct {
	FarmDetails *FarmDetailsDTO `json:"farmDetails"`
	Crops       []string        `json:"crops" validate:"max=50,dive,max=100"`
	Location    string          `json:"location" validate:"max=200"`
}

type AddCropHistoryRequest struct {
	CropName string `json:"cropName" validate:"required,max=100"`
	Season   string `json:"season" validate:"max=50"`
	Year     int    `json:"year" validate:"omitempty,min=1900,max=2100"`
	Yield    string `json:"yield" validate:"max=100"`
	Notes    string `json:"notes" validate:"max=1000"`
}
