package mapper

import (
	"agrisense-be/internal/entity"
	"agrisense-be/internal/model"

	"gorm.io/datatypes"
)

type FarmerMapper struct{}

func NewFarmerMapper() *FarmerMapper {
	return &FarmerMapper{}
}

func (m *FarmerMapper) ToEntity(f *model.Farmer) *entity.Farmer {
	if f == nil {
		return nil
	}
	crops := make([]entity.FarmerCrop, len(f.Crops))
	for i, c := range f.Crops {
		crops[i] = entity.FarmerCrop{Name: c.Name, Area: c.Area, SowingDate: c.SowingDate}
	}
	return &entity.Farmer{
		Id:        f.Id,
		Name:      f.Name,
		Phone:     f.Phone,
		Language:  f.Language,
		Location:  f.Location,
		Crops:     crops,
		CreatedAt: f.CreatedAt,
	}
}

func (m *FarmerMapper) ToModel(f *entity.Farmer) *model.Farmer {
	if f == nil {
		return nil
	}
	crops := make([]model.FarmerCrop, len(f.Crops))
	for i, c := range f.Crops {
		crops[i] = model.FarmerCrop{Name: c.Name, Area: c.Area, SowingDate: c.SowingDate}
	}
	return &model.Farmer{
		Id:        f.Id,
		Name:      f.Name,
		Phone:     f.Phone,
		Language:  f.Language,
		Location:  f.Location,
		Crops:     datatypes.NewJSONSlice(crops),
		CreatedAt: f.CreatedAt,
	}
}
