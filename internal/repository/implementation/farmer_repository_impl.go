package implementation

import (
	"context"
	"errors"

	"agrisense-be/internal/entity"
	"agrisense-be/internal/mapper"
	"agrisense-be/internal/model"
	"agrisense-be/internal/repository/contract"
	"agrisense-be/internal/repository/specification"

	"gorm.io/gorm"
)

type FarmerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FarmerMapper
}

func NewFarmerRepository(db *gorm.DB) contract.FarmerRepository {
	return &FarmerRepositoryImpl{
		db:     db,
		mapper: mapper.NewFarmerMapper(),
	}
}

func (r *FarmerRepositoryImpl) Create(ctx context.Context, farmer *entity.Farmer) error {
	m := r.mapper.ToModel(farmer)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateCreateError(err)
	}
	*farmer = *r.mapper.ToEntity(m)
	return nil
}

func (r *FarmerRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Farmer, error) {
	var m model.Farmer
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
