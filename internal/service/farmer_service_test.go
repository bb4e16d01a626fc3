package service

import (
	"context"
	"testing"

	"agrisense-be/internal/dto"
	"agrisense-be/internal/pkg/apperror"
	"agrisense-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFarmerRegisterIsIdempotentOnPhone(t *testing.T) {
	svc := NewFarmerService(newFactory(t), events.NopPublisher{}, nopLogger())
	ctx := context.Background()

	first, err := svc.Register(ctx, &dto.RegisterFarmerRequest{
		Name:  "Ramesh",
		Phone: "9876543210",
		Crops: []dto.FarmerCropDTO{{Name: "Wheat", Area: 2.5}},
	})
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, "Registration successful", first.Message)
	assert.Equal(t, "en", first.Language)

	again, err := svc.Register(ctx, &dto.RegisterFarmerRequest{Name: "Ramesh K", Phone: " 9876543210 ", Language: "hi"})
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, "Welcome back!", again.Message)
	assert.Equal(t, first.FarmerId, again.FarmerId)
	assert.Equal(t, "en", again.Language)
}

func TestFarmerRegisterRequiresNameAndPhone(t *testing.T) {
	svc := NewFarmerService(newFactory(t), events.NopPublisher{}, nopLogger())

	_, err := svc.Register(context.Background(), &dto.RegisterFarmerRequest{Name: "Ramesh"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = svc.Register(context.Background(), &dto.RegisterFarmerRequest{Phone: "123"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}
