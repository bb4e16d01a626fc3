package service

import (
	"context"
	"errors"
	"strings"

	"agrisense-be/internal/dto"
	"agrisense-be/internal/entity"
	"agrisense-be/internal/pkg/apperror"
	"agrisense-be/internal/pkg/logger"
	"agrisense-be/internal/repository/contract"
	"agrisense-be/internal/repository/specification"
	"agrisense-be/internal/repository/unitofwork"
	"agrisense-be/pkg/events"
)

const defaultFarmerLanguage = "en"

type IFarmerService interface {
	Register(ctx context.Context, req *dto.RegisterFarmerRequest) (*dto.RegisterFarmerResponse, error)
}

type farmerService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewFarmerService(uowFactory unitofwork.RepositoryFactory, eventPublisher events.Publisher, log logger.ILogger) IFarmerService {
	return &farmerService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// Register is idempotent on phone: a known phone returns the stored farmer without writing.
func (s *farmerService) Register(ctx context.Context, req *dto.RegisterFarmerRequest) (*dto.RegisterFarmerResponse, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || phone == "" {
		return nil, apperror.Validation("Name and phone are required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.FarmerRepository().FindOne(ctx, specification.ByPhone{Phone: phone})
	if err != nil {
		return nil, apperror.Internal("Server error", err)
	}
	if existing != nil {
		return welcomeBack(existing), nil
	}

	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = defaultFarmerLanguage
	}

	crops := make([]entity.FarmerCrop, 0, len(req.Crops))
	for _, c := range req.Crops {
		crops = append(crops, entity.FarmerCrop{
			Name:       strings.TrimSpace(c.Name),
			Area:       c.Area,
			SowingDate: c.SowingDate,
		})
	}

	farmer := &entity.Farmer{
		Name:     name,
		Phone:    phone,
		Language: language,
		Location: strings.TrimSpace(req.Location),
		Crops:    crops,
	}

	if err := uow.FarmerRepository().Create(ctx, farmer); err != nil {
		if !errors.Is(err, contract.ErrDuplicate) {
			return nil, apperror.Internal("Server error", err)
		}
		// Lost a race with a concurrent registration of the same phone.
		winner, findErr := uow.FarmerRepository().FindOne(ctx, specification.ByPhone{Phone: phone})
		if findErr != nil || winner == nil {
			return nil, apperror.Internal("Server error", errors.Join(err, findErr))
		}
		return welcomeBack(winner), nil
	}

	s.logger.Info("FARMER", "Farmer registered", map[string]interface{}{"farmer_id": farmer.Id.String()})
	publishEvent(ctx, s.eventPublisher, s.logger, events.New(events.TypeFarmerRegistered, map[string]any{
		"farmer_id": farmer.Id.String(),
		"language":  farmer.Language,
		"location":  farmer.Location,
	}))

	return &dto.RegisterFarmerResponse{
		Message:  "Registration successful",
		FarmerId: farmer.Id,
		Language: farmer.Language,
		Created:  true,
	}, nil
}

func welcomeBack(f *entity.Farmer) *dto.RegisterFarmerResponse {
	return &dto.RegisterFarmerResponse{
		Message:  "Welcome back!",
		FarmerId: f.Id,
		Language: f.Language,
	}
}
