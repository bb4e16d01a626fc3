package service

import (
	"context"
	"errors"
	"testing"

	"agrisense-be/internal/dto"
	"agrisense-be/internal/pkg/apperror"
	"agrisense-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testModels = AdvisoryModels{Text: "llama-3.3-70b-versatile", Vision: "llama-4-scout"}

func TestCropAdviceUsesDefaults(t *testing.T) {
	fake := &fakeLLM{answer: "Grow soybean."}
	svc := NewAdvisoryService(fake, testModels, nopLogger())

	res, err := svc.CropAdvice(context.Background(), &dto.CropAdviceRequest{Language: "punjabi"})
	require.NoError(t, err)
	assert.Equal(t, "Grow soybean.", res.Advice)

	call := fake.LastCall()
	require.Len(t, call.Messages, 1)
	content := call.Messages[0].Content
	assert.Contains(t, content, "Respond in Punjabi.")
	assert.Contains(t, content, "Location: Central India, Season: Kharif, Soil Type: Not specified.")
	assert.Equal(t, "llama-3.3-70b-versatile", call.Options.Model)
	assert.Equal(t, 1500, call.Options.MaxTokens)
}

func TestAdvisoryEmptyAnswerFallsBack(t *testing.T) {
	fake := &fakeLLM{answer: "  "}
	svc := NewAdvisoryService(fake, testModels, nopLogger())
	ctx := context.Background()

	guidance, err := svc.FinancialGuidance(ctx, &dto.FinancialGuidanceRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Could not generate.", guidance.Guidance)
	assert.Contains(t, fake.LastCall().Messages[0].Content, "Topic: general financial planning.")

	schemes, err := svc.LocationSchemes(ctx, &dto.LocationSchemesRequest{Location: "Punjab"})
	require.NoError(t, err)
	assert.Equal(t, "Could not get schemes.", schemes.Schemes)
	assert.Contains(t, fake.LastCall().Messages[0].Content, "farmers in Punjab in 2024-2025")
	assert.Equal(t, 2000, fake.LastCall().Options.MaxTokens)
}

func TestAdvisoryProviderFailureIsInternal(t *testing.T) {
	fake := &fakeLLM{err: llm.Unavailable("boom")}
	svc := NewAdvisoryService(fake, testModels, nopLogger())

	_, err := svc.CropAdvice(context.Background(), &dto.CropAdviceRequest{})
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindInternal, appErr.Kind)
	assert.Equal(t, "Failed to get crop advice", appErr.Message)
	assert.True(t, errors.Is(err, llm.ErrUnavailable))
}

func TestAnalyzeSoilSendsImageToVisionModel(t *testing.T) {
	fake := &fakeLLM{answer: "Loamy soil. Grow wheat."}
	svc := NewAdvisoryService(fake, testModels, nopLogger())

	res, err := svc.AnalyzeSoil(context.Background(), &dto.ImageUpload{MIMEType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}})
	require.NoError(t, err)
	assert.Equal(t, "Loamy soil. Grow wheat.", res.Crops)

	call := fake.LastCall()
	require.Len(t, call.Messages[0].Images, 1)
	assert.Equal(t, "image/jpeg", call.Messages[0].Images[0].MIMEType)
	assert.Contains(t, call.Messages[0].Content, "Analyze this soil image.")
	assert.Equal(t, "llama-4-scout", call.Options.Model)
	assert.InDelta(t, 0.5, call.Options.Temperature, 1e-9)
}

func TestAnalyzePlantValidation(t *testing.T) {
	fake := &fakeLLM{answer: "Healthy."}
	svc := NewAdvisoryService(fake, testModels, nopLogger())
	ctx := context.Background()

	_, err := svc.AnalyzePlant(ctx, nil)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, "No image uploaded", appErr.Message)

	_, err = svc.AnalyzePlant(ctx, &dto.ImageUpload{MIMEType: "application/pdf", Data: []byte("%PDF")})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Empty(t, fake.Calls())

	fake.err = errors.New("down")
	_, err = svc.AnalyzePlant(ctx, &dto.ImageUpload{MIMEType: "image/png", Data: []byte{0x89}})
	appErr, ok = apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, "Failed to analyze plant", appErr.Message)
}
