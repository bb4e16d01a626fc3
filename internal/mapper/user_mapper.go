package mapper

import (
	"agrisense-be/internal/entity"
	"agrisense-be/internal/model"

	"gorm.io/datatypes"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// ToEntity leaves CropHistory empty; it lives in its own table.
func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	details := u.FarmDetails.Data()
	crops := []string(u.Crops)
	if crops == nil {
		crops = []string{}
	}
	return &entity.User{
		Id:           u.Id,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Language:     entity.Language(u.Language),
		Location:     u.Location,
		Crops:        crops,
		FarmDetails: entity.FarmDetails{
			LandSize:         details.LandSize,
			SoilType:         details.SoilType,
			IrrigationSource: details.IrrigationSource,
			FarmingType:      entity.FarmingType(details.FarmingType),
		},
		CropHistory: []entity.CropHistoryRecord{},
		Version:     u.Version,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:           u.Id,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Language:     string(u.Language),
		Location:     u.Location,
		Crops:        datatypes.NewJSONSlice(u.Crops),
		FarmDetails:  datatypes.NewJSONType(m.FarmDetailsToModel(u.FarmDetails)),
		Version:      u.Version,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *UserMapper) FarmDetailsToModel(d entity.FarmDetails) model.FarmDetails {
	return model.FarmDetails{
		LandSize:         d.LandSize,
		SoilType:         d.SoilType,
		IrrigationSource: d.IrrigationSource,
		FarmingType:      string(d.FarmingType),
	}
}

// Crop History Mappers

func (m *UserMapper) CropHistoryToEntity(r *model.CropHistoryRecord) entity.CropHistoryRecord {
	return entity.CropHistoryRecord{
		Id:        r.Id,
		UserId:    r.UserId,
		CropName:  r.CropName,
		Season:    r.Season,
		Year:      r.Year,
		Yield:     r.Yield,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
	}
}

func (m *UserMapper) CropHistoryToModel(r *entity.CropHistoryRecord) *model.CropHistoryRecord {
	return &model.CropHistoryRecord{
		Id:        r.Id,
		UserId:    r.UserId,
		CropName:  r.CropName,
		Season:    r.Season,
		Year:      r.Year,
		Yield:     r.Yield,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
	}
}

func (m *UserMapper) CropHistoryToEntities(records []*model.CropHistoryRecord) []entity.CropHistoryRecord {
	entities := make([]entity.CropHistoryRecord, len(records))
	for i, r := range records {
		entities[i] = m.CropHistoryToEntity(r)
	}
	return entities
}
