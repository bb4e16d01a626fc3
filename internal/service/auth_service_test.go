package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"agrisense-be/internal/dto"
	"agrisense-be/internal/pkg/apperror"
	"agrisense-be/internal/pkg/token"
	"agrisense-be/internal/repository/specification"
	"agrisense-be/internal/repository/unitofwork"
	"agrisense-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(factory unitofwork.RepositoryFactory, publisher events.Publisher) (IAuthService, *token.Issuer) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	svc := NewAuthService(factory, issuer, publisher, nopLogger())
	svc.(*authService).bcryptCost = bcrypt.MinCost
	return svc, issuer
}

func signup(t *testing.T, svc IAuthService, email string) *dto.AuthResponse {
	t.Helper()
	res, err := svc.Signup(context.Background(), &dto.SignupRequest{
		Name:     "Harpreet",
		Email:    email,
		Password: "s3cret-pass",
		Location: "Ludhiana, Punjab",
		Language: "punjabi",
	})
	require.NoError(t, err)
	return res
}

func TestSignupLoginMe(t *testing.T) {
	factory := newFactory(t)
	recorder := newRecordingEvents()
	svc, issuer := newTestAuthService(factory, recorder)
	ctx := context.Background()

	created := signup(t, svc, "Harpreet@Example.com ")
	assert.Equal(t, "Account created successfully!", created.Message)
	assert.Equal(t, "harpreet@example.com", created.User.Email)
	assert.Equal(t, "punjabi", created.User.Language)

	userId, err := issuer.Verify(created.Token)
	require.NoError(t, err)
	assert.Equal(t, created.User.Id, userId)

	select {
	case evt := <-recorder.ch:
		assert.Equal(t, events.TypeUserSignedUp, evt.EventType())
	case <-time.After(2 * time.Second):
		t.Fatal("signup event not published")
	}

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "HARPREET@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "Login successful!", login.Message)
	assert.NotEmpty(t, login.Token)

	me, err := svc.Me(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, "Harpreet", me.Name)
	assert.Equal(t, "Conventional", me.FarmDetails.FarmingType)
	assert.Empty(t, me.Crops)
	assert.Empty(t, me.CropHistory)

	raw, err := json.Marshal(me)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "$2a$")
}

func TestSignupValidation(t *testing.T) {
	svc, _ := newTestAuthService(newFactory(t), events.NopPublisher{})

	cases := []dto.SignupRequest{
		{Email: "a@b.c", Password: "x"},
		{Name: "A", Password: "x"},
		{Name: "A", Email: "a@b.c"},
		{Name: "   ", Email: "a@b.c", Password: "x"},
	}
	for _, req := range cases {
		_, err := svc.Signup(context.Background(), &req)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	}
}

func TestSignupAcceptsLongPasswords(t *testing.T) {
	svc, _ := newTestAuthService(newFactory(t), events.NopPublisher{})
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "multibyte over 72 bytes", email: "accent@example.com", password: strings.Repeat("é", 40)},
		{name: "ascii over 72 chars", email: "ascii@example.com", password: strings.Repeat("a", 80)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, &dto.SignupRequest{Name: "Long", Email: tt.email, Password: tt.password})
			require.NoError(t, err)

			_, err = svc.Login(ctx, &dto.LoginRequest{Email: tt.email, Password: tt.password})
			require.NoError(t, err)

			// Only the exact password matches, not a shared 72-byte prefix.
			_, err = svc.Login(ctx, &dto.LoginRequest{Email: tt.email, Password: tt.password + "x"})
			assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	factory := newFactory(t)
	svc, _ := newTestAuthService(factory, events.NopPublisher{})
	ctx := context.Background()

	signup(t, svc, "asha@example.com")

	_, err := svc.Signup(ctx, &dto.SignupRequest{Name: "Other", Email: "ASHA@example.com", Password: "pw"})
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindConflict, appErr.Kind)
	assert.Equal(t, "Email already registered. Please login.", appErr.Message)

	count, err := factory.NewUnitOfWork(ctx).UserRepository().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newTestAuthService(newFactory(t), events.NopPublisher{})
	ctx := context.Background()
	signup(t, svc, "kiran@example.com")

	res, err := svc.Login(ctx, &dto.LoginRequest{Email: "kiran@example.com", Password: "wrong"})
	assert.Nil(t, res)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))

	res, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	assert.Nil(t, res)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "kiran@example.com"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestMeUnknownUser(t *testing.T) {
	svc, _ := newTestAuthService(newFactory(t), events.NopPublisher{})
	_, err := svc.Me(context.Background(), uuid.New())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestUpdateProfileReplacesFields(t *testing.T) {
	svc, _ := newTestAuthService(newFactory(t), events.NopPublisher{})
	ctx := context.Background()
	user := signup(t, svc, "meena@example.com").User

	first, err := svc.UpdateProfile(ctx, user.Id, &dto.UpdateProfileRequest{
		FarmDetails: &dto.FarmDetailsDTO{LandSize: "5 acres", SoilType: "Black", IrrigationSource: "Rainfed", FarmingType: "Organic"},
		Crops:       []string{"Cotton", " ", "Soybean"},
		Location:    "Nagpur, Maharashtra",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cotton", "Soybean"}, first.Crops)
	assert.Equal(t, "Organic", first.FarmDetails.FarmingType)
	assert.Equal(t, 1, first.Version)

	second, err := svc.UpdateProfile(ctx, user.Id, &dto.UpdateProfileRequest{Location: "Wardha"})
	require.NoError(t, err)
	assert.Equal(t, "Wardha", second.Location)
	assert.Empty(t, second.Crops)
	assert.Equal(t, dto.FarmDetailsDTO{FarmingType: "Conventional"}, second.FarmDetails)
	assert.Equal(t, 2, second.Version)

	_, err = svc.UpdateProfile(ctx, uuid.New(), &dto.UpdateProfileRequest{})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestCropHistoryAddAndRemove(t *testing.T) {
	factory := newFactory(t)
	svc, _ := newTestAuthService(factory, events.NopPublisher{})
	ctx := context.Background()
	owner := signup(t, svc, "owner@example.com").User
	other := signup(t, svc, "other@example.com").User

	_, err := svc.AddCropHistory(ctx, owner.Id, &dto.AddCropHistoryRequest{CropName: "Wheat", Season: "Rabi 2023", Year: 2023})
	require.NoError(t, err)
	history, err := svc.AddCropHistory(ctx, owner.Id, &dto.AddCropHistoryRequest{CropName: "Rice", Season: "Kharif 2024", Year: 2024})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Wheat", history[0].CropName)
	assert.Equal(t, "Rice", history[1].CropName)

	otherHistory, err := svc.AddCropHistory(ctx, other.Id, &dto.AddCropHistoryRequest{CropName: "Maize"})
	require.NoError(t, err)

	// Another user's record id is not removable.
	history, err = svc.RemoveCropHistory(ctx, owner.Id, otherHistory[0].Id)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	history, err = svc.RemoveCropHistory(ctx, owner.Id, uuid.New())
	require.NoError(t, err)
	assert.Len(t, history, 2)

	history, err = svc.RemoveCropHistory(ctx, owner.Id, history[0].Id)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Rice", history[0].CropName)

	stillThere, err := factory.NewUnitOfWork(ctx).CropHistoryRepository().FindAll(ctx, specification.UserOwnedBy{UserID: other.Id})
	require.NoError(t, err)
	assert.Len(t, stillThere, 1)

	_, err = svc.AddCropHistory(ctx, uuid.New(), &dto.AddCropHistoryRequest{CropName: "Gram"})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
