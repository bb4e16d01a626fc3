package service

import (
	"context"
	"fmt"
	"strings"

	"agrisense-be/internal/constant"
	"agrisense-be/internal/dto"
	"agrisense-be/internal/pkg/apperror"
	"agrisense-be/internal/pkg/logger"
	"agrisense-be/pkg/llm"
	"agrisense-be/pkg/rag/prompt"
)

type AdvisoryModels struct {
	Text   string
	Vision string
}

type IAdvisoryService interface {
	CropAdvice(ctx context.Context, req *dto.CropAdviceRequest) (*dto.CropAdviceResponse, error)
	FinancialGuidance(ctx context.Context, req *dto.FinancialGuidanceRequest) (*dto.FinancialGuidanceResponse, error)
	LocationSchemes(ctx context.Context, req *dto.LocationSchemesRequest) (*dto.LocationSchemesResponse, error)
	AnalyzeSoil(ctx context.Context, image *dto.ImageUpload) (*dto.SoilAnalysisResponse, error)
	AnalyzePlant(ctx context.Context, image *dto.ImageUpload) (*dto.PlantAnalysisResponse, error)
}

type advisoryService struct {
	llmProvider llm.LLMProvider
	models      AdvisoryModels
	logger      logger.ILogger
}

func NewAdvisoryService(llmProvider llm.LLMProvider, models AdvisoryModels, log logger.ILogger) IAdvisoryService {
	return &advisoryService{
		llmProvider: llmProvider,
		models:      models,
		logger:      log,
	}
}

func (s *advisoryService) CropAdvice(ctx context.Context, req *dto.CropAdviceRequest) (*dto.CropAdviceResponse, error) {
	content := fmt.Sprintf(constant.CropAdvicePromptTemplate,
		prompt.ResolveLanguage(req.Language),
		orDefault(req.Location, constant.DefaultAdviceLocation),
		orDefault(req.Season, constant.DefaultAdviceSeason),
		orDefault(req.SoilType, constant.DefaultAdviceSoilType),
	)

	answer, err := s.generate(ctx, "crop_advice", []llm.Message{{Role: llm.RoleUser, Content: content}},
		llm.WithModel(s.models.Text),
		llm.WithTemperature(constant.AdvisoryTemperature),
		llm.WithMaxTokens(constant.AdviceMaxTokens),
	)
	if err != nil {
		return nil, apperror.Internal("Failed to get crop advice", err)
	}
	return &dto.CropAdviceResponse{Advice: orDefault(answer, constant.FallbackGenerated)}, nil
}

func (s *advisoryService) FinancialGuidance(ctx context.Context, req *dto.FinancialGuidanceRequest) (*dto.FinancialGuidanceResponse, error) {
	content := fmt.Sprintf(constant.FinancialGuidancePromptTemplate,
		prompt.ResolveLanguage(req.Language),
		orDefault(req.Topic, constant.DefaultFinancialTopic),
	)

	answer, err := s.generate(ctx, "financial_guidance", []llm.Message{{Role: llm.RoleUser, Content: content}},
		llm.WithModel(s.models.Text),
		llm.WithTemperature(constant.AdvisoryTemperature),
		llm.WithMaxTokens(constant.AdviceMaxTokens),
	)
	if err != nil {
		return nil, apperror.Internal("Failed to get financial guidance", err)
	}
	return &dto.FinancialGuidanceResponse{Guidance: orDefault(answer, constant.FallbackGenerated)}, nil
}

func (s *advisoryService) LocationSchemes(ctx context.Context, req *dto.LocationSchemesRequest) (*dto.LocationSchemesResponse, error) {
	content := fmt.Sprintf(constant.LocationSchemesPromptTemplate,
		orDefault(req.Location, constant.DefaultSchemesLocation),
		prompt.ResolveLanguage(req.Language),
	)

	answer, err := s.generate(ctx, "location_schemes", []llm.Message{{Role: llm.RoleUser, Content: content}},
		llm.WithModel(s.models.Text),
		llm.WithTemperature(constant.AdvisoryTemperature),
		llm.WithMaxTokens(constant.LocationSchemeMaxTokens),
	)
	if err != nil {
		return nil, apperror.Internal("Failed to get schemes", err)
	}
	return &dto.LocationSchemesResponse{Schemes: orDefault(answer, constant.FallbackSchemes)}, nil
}

func (s *advisoryService) AnalyzeSoil(ctx context.Context, image *dto.ImageUpload) (*dto.SoilAnalysisResponse, error) {
	answer, err := s.analyzeImage(ctx, "analyze_soil", constant.SoilAnalysisPrompt, "Failed to analyze soil", image)
	if err != nil {
		return nil, err
	}
	return &dto.SoilAnalysisResponse{Crops: orDefault(answer, constant.FallbackAnalysis)}, nil
}

func (s *advisoryService) AnalyzePlant(ctx context.Context, image *dto.ImageUpload) (*dto.PlantAnalysisResponse, error) {
	answer, err := s.analyzeImage(ctx, "analyze_plant", constant.PlantAnalysisPrompt, "Failed to analyze plant", image)
	if err != nil {
		return nil, err
	}
	return &dto.PlantAnalysisResponse{Health: orDefault(answer, constant.FallbackAnalysis)}, nil
}

func (s *advisoryService) analyzeImage(ctx context.Context, operation, instruction, failureMessage string, image *dto.ImageUpload) (string, error) {
	if image == nil || len(image.Data) == 0 {
		return "", apperror.Validation("No image uploaded")
	}
	if !strings.HasPrefix(image.MIMEType, "image/") {
		return "", apperror.Validation("Only image uploads are accepted")
	}

	msg := llm.Message{
		Role:    llm.RoleUser,
		Content: instruction,
		Images:  []llm.Image{{MIMEType: image.MIMEType, Data: image.Data}},
	}
	answer, err := s.generate(ctx, operation, []llm.Message{msg},
		llm.WithModel(s.models.Vision),
		llm.WithTemperature(constant.VisionTemperature),
		llm.WithMaxTokens(constant.VisionMaxTokens),
	)
	if err != nil {
		return "", apperror.Internal(failureMessage, err)
	}
	return answer, nil
}

func (s *advisoryService) generate(ctx context.Context, operation string, messages []llm.Message, opts ...llm.Option) (string, error) {
	answer, err := s.llmProvider.Chat(ctx, messages, opts...)
	if err != nil {
		s.logger.Error("ADVISORY", "Completion failed", map[string]interface{}{
			"operation": operation,
			"error":     err.Error(),
		})
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
