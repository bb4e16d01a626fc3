package entity

import (
	"time"

	"github.com/google/uuid"
)

type FarmerCrop struct {
	Name       string     `json:"name"`
	Area       float64    `json:"area"`
	SowingDate *time.Time `json:"sowingDate,omitempty"`
}

// Farmer is the phone-registered identity. It is independent of User.
type Farmer struct {
	Id        uuid.UUID
	Name      string
	Phone     string
	Language  string
	Location  string
	Crops     []FarmerCrop
	CreatedAt time.Time
}
