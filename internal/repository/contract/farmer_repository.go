package contract

import (
	"context"

	"agrisense-be/internal/entity"
	"agrisense-be/internal/repository/specification"
)

type FarmerRepository interface {
	Create(ctx context.Context, farmer *entity.Farmer) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Farmer, error)
}
