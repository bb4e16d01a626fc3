package contract

import (
	"context"

	"agrisense-be/internal/entity"
	"agrisense-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdateProfile replaces location, crops and farm details wholesale and bumps the version.
	// Returns false when the user does not exist.
	UpdateProfile(ctx context.Context, id uuid.UUID, location string, crops []string, details entity.FarmDetails) (bool, error)
}

type CropHistoryRepository interface {
	Create(ctx context.Context, record *entity.CropHistoryRecord) error
	// DeleteOwned removes the record only when it belongs to userId. Unknown ids are a no-op.
	DeleteOwned(ctx context.Context, userId, id uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]entity.CropHistoryRecord, error)
}
