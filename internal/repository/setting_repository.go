package repository

import (
	"timeclass-backend/internal/model"

	"gorm.io/gorm"
)

type SettingRepository interface {
	Get() (*model.Setting, error)
	Update(setting *model.Setting) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db}
}

// Get returns the singleton settings row, creating the default
// (4 DAYS) on first access.
func (r *settingRepository) Get() (*model.Setting, error) {
	var setting model.Setting
	err := r.db.FirstOrCreate(&setting, model.Setting{
		AutoApproveAmount: 4,
		AutoApproveUnit:   model.UnitDays,
	}).Error
	return &setting, err
}

func (r *settingRepository) Update(setting *model.Setting) error {
	return r.db.Save(setting).Error
}
