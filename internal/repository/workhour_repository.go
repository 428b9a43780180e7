package repository

import (
	"time"

	"timeclass-backend/internal/model"

	"gorm.io/gorm"
)

type WorkHourRepository interface {
	Create(wh *model.WorkHour) error
	CreateMany(whs []model.WorkHour) error
	GetByID(id uint) (*model.WorkHour, error)
	GetAll(month, year string, teacherID uint) ([]model.WorkHour, error)
	GetByTeacherID(teacherID uint) ([]model.WorkHour, error)
	GetExpiredPending(cutoff time.Time) ([]model.WorkHour, error)
	Update(wh *model.WorkHour) error
	Delete(id uint) error
}

type workHourRepository struct {
	db *gorm.DB
}

func NewWorkHourRepository(db *gorm.DB) WorkHourRepository {
	return &workHourRepository{db}
}

func (r *workHourRepository) Create(wh *model.WorkHour) error {
	return r.db.Create(wh).Error
}

func (r *workHourRepository) CreateMany(whs []model.WorkHour) error {
	return r.db.Create(&whs).Error
}

func (r *workHourRepository) GetByID(id uint) (*model.WorkHour, error) {
	var wh model.WorkHour
	err := r.db.Preload("Teacher").Preload("Claim").First(&wh, id).Error
	return &wh, err
}

func (r *workHourRepository) GetAll(month, year string, teacherID uint) ([]model.WorkHour, error) {
	var list []model.WorkHour
	q := r.db.Preload("Teacher").Preload("Claim")
	if month != "" && year != "" {
		q = q.Where("date LIKE ?", year+"-"+month+"-%")
	}
	if teacherID != 0 {
		q = q.Where("teacher_id = ?", teacherID)
	}
	err := q.Order("date desc").Find(&list).Error
	return list, err
}

func (r *workHourRepository) GetByTeacherID(teacherID uint) ([]model.WorkHour, error) {
	var list []model.WorkHour
	err := r.db.Preload("Claim").Where("teacher_id = ?", teacherID).
		Order("date desc").Find(&list).Error
	return list, err
}

// GetExpiredPending returns PENDING records created before cutoff that
// have no claim attached. These are the candidates for auto-approval.
func (r *workHourRepository) GetExpiredPending(cutoff time.Time) ([]model.WorkHour, error) {
	var list []model.WorkHour
	err := r.db.Preload("Teacher").
		Where("status = ? AND created_at <= ?", model.StatusPending, cutoff).
		Where("id NOT IN (?)", r.db.Model(&model.Claim{}).Select("work_hour_id")).
		Find(&list).Error
	return list, err
}

func (r *workHourRepository) Update(wh *model.WorkHour) error {
	return r.db.Save(wh).Error
}

func (r *workHourRepository) Delete(id uint) error {
	return r.db.Delete(&model.WorkHour{}, id).Error
}
