package dto

import (
	"time"

	"github.com/google/uuid"
)

type FarmerCropDTO struct {
	Name       string     `json:"name" validate:"max=100"`
	Area       float64    `json:"area" validate:"min=0"`
	SowingDate *time.Time `json:"sowingDate,omitempty"`
}

type RegisterFarmerRequest struct {
	Name     string          `json:"name" validate:"max=120"`
	Phone    string          `json:"phone" validate:"max=20"`
	Language string          `json:"language" validate:"max=20"`
	Location string          `json:"location" validate:"max=200"`
	Crops    []FarmerCropDTO `json:"crops" validate:"max=50,dive"`
}

type RegisterFarmerResponse struct {
	Message  string    `json:"message"`
	FarmerId uuid.UUID `json:"farmer_id"`
	Language string    `json:"language"`

	// Created is false when the phone was already registered.
	Created bool `json:"-"`
}
