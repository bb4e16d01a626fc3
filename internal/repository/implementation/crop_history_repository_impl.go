package implementation

import (
	"context"

	"agrisense-be/internal/entity"
	"agrisense-be/internal/mapper"
	"agrisense-be/internal/model"
	"agrisense-be/internal/repository/contract"
	"agrisense-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CropHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewCropHistoryRepository(db *gorm.DB) contract.CropHistoryRepository {
	return &CropHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *CropHistoryRepositoryImpl) Create(ctx context.Context, record *entity.CropHistoryRecord) error {
	m := r.mapper.CropHistoryToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = r.mapper.CropHistoryToEntity(m)
	return nil
}

func (r *CropHistoryRepositoryImpl) DeleteOwned(ctx context.Context, userId, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userId).
		Delete(&model.CropHistoryRecord{}).Error
}

func (r *CropHistoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]entity.CropHistoryRecord, error) {
	var models []*model.CropHistoryRecord
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.CropHistoryToEntities(models), nil
}
