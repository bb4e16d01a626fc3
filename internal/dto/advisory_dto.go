package dto

type CropAdviceRequest struct {
	Location string `json:"location" validate:"max=200"`
	Season   string `json:"season" validate:"max=50"`
	SoilType string `json:"soilType" validate:"max=100"`
	Language string `json:"language"`
}

type CropAdviceResponse struct {
	Advice string `json:"advice"`
}

type FinancialGuidanceRequest struct {
	Topic    string `json:"topic" validate:"max=300"`
	Language string `json:"language"`
}

type FinancialGuidanceResponse struct {
	Guidance string `json:"guidance"`
}

type LocationSchemesRequest struct {
	Location string `json:"location" validate:"max=200"`
	Language string `json:"language"`
}

type LocationSchemesResponse struct {
	Schemes string `json:"schemes"`
}

// ImageUpload is an uploaded photo held in memory.
type ImageUpload struct {
	MIMEType string
	Data     []byte
}

type SoilAnalysisResponse struct {
	Crops string `json:"crops"`
}

type PlantAnalysisResponse struct {
	Health string `json:"health"`
}
