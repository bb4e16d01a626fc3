package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"agrisense-be/internal/dto"
	"agrisense-be/internal/entity"
	"agrisense-be/internal/pkg/apperror"
	"agrisense-be/internal/pkg/logger"
	"agrisense-be/internal/pkg/token"
	"agrisense-be/internal/repository/contract"
	"agrisense-be/internal/repository/specification"
	"agrisense-be/internal/repository/unitofwork"
	"agrisense-be/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgCredentialsRequired = "Name, email, and password are required"
	msgLoginFieldsRequired = "Email and password are required"
	msgEmailTaken          = "Email already registered. Please login."
	msgBadCredentials      = "Invalid email or password"
	msgUserNotFound        = "User not found"
)

type IAuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	AddCropHistory(ctx context.Context, userId uuid.UUID, req *dto.AddCropHistoryRequest) ([]dto.CropHistoryDTO, error)
	RemoveCropHistory(ctx context.Context, userId, recordId uuid.UUID) ([]dto.CropHistoryDTO, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	issuer         *token.Issuer
	eventPublisher events.Publisher
	logger         logger.ILogger
	bcryptCost     int
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, issuer *token.Issuer, eventPublisher events.Publisher, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		issuer:         issuer,
		eventPublisher: eventPublisher,
		logger:         log,
		bcryptCost:     bcrypt.DefaultCost,
	}
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, apperror.Validation(msgCredentialsRequired)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, apperror.Internal("Server error during signup", err)
	}
	if existing != nil {
		return nil, apperror.Conflict(msgEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword(passwordDigest(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperror.Internal("Server error during signup", err)
	}

	language := entity.Language(req.Language)
	if language == "" {
		language = entity.LanguageEnglish
	}

	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Language:     language,
		Location:     strings.TrimSpace(req.Location),
		Crops:        []string{},
		FarmDetails:  entity.FarmDetails{FarmingType: entity.FarmingTypeConventional},
	}

	// The unique index decides races between two signups with the same email.
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			return nil, apperror.Conflict(msgEmailTaken)
		}
		return nil, apperror.Internal("Server error during signup", err)
	}

	signed, err := s.issuer.Issue(user.Id)
	if err != nil {
		return nil, apperror.Internal("Server error during signup", err)
	}

	s.logger.Info("AUTH", "User signed up", map[string]interface{}{"user_id": user.Id.String()})
	publishEvent(ctx, s.eventPublisher, s.logger, events.New(events.TypeUserSignedUp, map[string]any{
		"user_id":  user.Id.String(),
		"language": string(user.Language),
		"location": user.Location,
	}))

	return &dto.AuthResponse{
		Message: "Account created successfully!",
		Token:   signed,
		User:    toUserSummary(user),
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperror.Validation(msgLoginFieldsRequired)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, apperror.Internal("Server error during login", err)
	}
	if user == nil {
		return nil, apperror.Unauthorized(msgBadCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordDigest(req.Password)); err != nil {
		return nil, apperror.Unauthorized(msgBadCredentials)
	}

	signed, err := s.issuer.Issue(user.Id)
	if err != nil {
		return nil, apperror.Internal("Server error during login", err)
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.New(events.TypeUserLogin, map[string]any{
		"user_id": user.Id.String(),
	}))

	return &dto.AuthResponse{
		Message: "Login successful!",
		Token:   signed,
		User:    toUserSummary(user),
	}, nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := loadUserWithHistory(ctx, uow, userId)
	if err != nil {
		return nil, apperror.Internal("Server error", err)
	}
	if user == nil {
		return nil, apperror.NotFound(msgUserNotFound)
	}
	return toUserProfileResponse(user), nil
}

func (s *authService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	details := entity.FarmDetails{FarmingType: entity.FarmingTypeConventional}
	if req.FarmDetails != nil {
		details = entity.FarmDetails{
			LandSize:         strings.TrimSpace(req.FarmDetails.LandSize),
			SoilType:         strings.TrimSpace(req.FarmDetails.SoilType),
			IrrigationSource: strings.TrimSpace(req.FarmDetails.IrrigationSource),
			FarmingType:      entity.FarmingType(req.FarmDetails.FarmingType),
		}
		if details.FarmingType == "" {
			details.FarmingType = entity.FarmingTypeConventional
		}
	}

	crops := make([]string, 0, len(req.Crops))
	for _, c := range req.Crops {
		if c = strings.TrimSpace(c); c != "" {
			crops = append(crops, c)
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	// Last writer wins: the three fields are replaced as a unit.
	updated, err := uow.UserRepository().UpdateProfile(ctx, userId, strings.TrimSpace(req.Location), crops, details)
	if err != nil {
		return nil, apperror.Internal("Failed to update profile", err)
	}
	if !updated {
		return nil, apperror.NotFound(msgUserNotFound)
	}

	user, err := loadUserWithHistory(ctx, uow, userId)
	if err != nil {
		return nil, apperror.Internal("Failed to update profile", err)
	}
	if user == nil {
		return nil, apperror.NotFound(msgUserNotFound)
	}

	s.logger.Info("AUTH", "Profile updated", map[string]interface{}{
		"user_id": userId.String(),
		"version": user.Version,
	})
	return toUserProfileResponse(user), nil
}

func (s *authService) AddCropHistory(ctx context.Context, userId uuid.UUID, req *dto.AddCropHistoryRequest) ([]dto.CropHistoryDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	exists, err := uow.UserRepository().Count(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal("Failed to add history", err)
	}
	if exists == 0 {
		return nil, apperror.NotFound(msgUserNotFound)
	}

	record := &entity.CropHistoryRecord{
		UserId:   userId,
		CropName: strings.TrimSpace(req.CropName),
		Season:   strings.TrimSpace(req.Season),
		Year:     req.Year,
		Yield:    strings.TrimSpace(req.Yield),
		Notes:    strings.TrimSpace(req.Notes),
	}
	if err := uow.CropHistoryRepository().Create(ctx, record); err != nil {
		return nil, apperror.Internal("Failed to add history", err)
	}

	history, err := cropHistoryOf(ctx, uow, userId)
	if err != nil {
		return nil, apperror.Internal("Failed to add history", err)
	}
	return toCropHistoryDTOs(history), nil
}

// RemoveCropHistory deletes one of the user's records. Unknown ids leave the history unchanged.
func (s *authService) RemoveCropHistory(ctx context.Context, userId, recordId uuid.UUID) ([]dto.CropHistoryDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	exists, err := uow.UserRepository().Count(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal("Failed to remove record", err)
	}
	if exists == 0 {
		return nil, apperror.NotFound(msgUserNotFound)
	}

	if err := uow.CropHistoryRepository().DeleteOwned(ctx, userId, recordId); err != nil {
		return nil, apperror.Internal("Failed to remove record", err)
	}

	history, err := cropHistoryOf(ctx, uow, userId)
	if err != nil {
		return nil, apperror.Internal("Failed to remove record", err)
	}
	return toCropHistoryDTOs(history), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// loadUserWithHistory returns (nil, nil) when the user does not exist.
func loadUserWithHistory(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		return nil, err
	}
	history, err := cropHistoryOf(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	user.CropHistory = history
	return user, nil
}

func cropHistoryOf(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) ([]entity.CropHistoryRecord, error) {
	return uow.CropHistoryRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.InsertionOrder{},
	)
}

func toUserSummary(u *entity.User) dto.UserSummary {
	return dto.UserSummary{
		Id:       u.Id,
		Name:     u.Name,
		Email:    u.Email,
		Location: u.Location,
		Language: string(u.Language),
	}
}

func toUserProfileResponse(u *entity.User) *dto.UserProfileResponse {
	crops := u.Crops
	if crops == nil {
		crops = []string{}
	}
	return &dto.UserProfileResponse{
		Id:       u.Id,
		Name:     u.Name,
		Email:    u.Email,
		Language: string(u.Language),
		Location: u.Location,
		Crops:    crops,
		FarmDetails: dto.FarmDetailsDTO{
			LandSize:         u.FarmDetails.LandSize,
			SoilType:         u.FarmDetails.SoilType,
			IrrigationSource: u.FarmDetails.IrrigationSource,
			FarmingType:      string(u.FarmDetails.FarmingType),
		},
		CropHistory: toCropHistoryDTOs(u.CropHistory),
		Version:     u.Version,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toCropHistoryDTOs(records []entity.CropHistoryRecord) []dto.CropHistoryDTO {
	out := make([]dto.CropHistoryDTO, len(records))
	for i, r := range records {
		out[i] = dto.CropHistoryDTO{
			Id:        r.Id,
			CropName:  r.CropName,
			Season:    r.Season,
			Year:      r.Year,
			Yield:     r.Yield,
			Notes:     r.Notes,
			CreatedAt: r.CreatedAt,
		}
	}
	return out
}

// passwordDigest feeds bcrypt a fixed 44-byte input so passwords of any length are accepted.
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
