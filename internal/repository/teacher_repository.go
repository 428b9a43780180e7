package repository

import (
	"timeclass-backend/internal/model"

	"gorm.io/gorm"
)

type TeacherRepository interface {
	Create(teacher *model.Teacher) error
	GetByID(id uint) (*model.Teacher, error)
	GetByDocument(document string) (*model.Teacher, error)
	GetAll() ([]model.Teacher, error)
	Update(teacher *model.Teacher) error
	Delete(id uint) error
}

type teacherRepository struct {
	db *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db}
}

func (r *teacherRepository) Create(teacher *model.Teacher) error {
	return r.db.Create(teacher).Error
}

func (r *teacherRepository) GetByID(id uint) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.First(&teacher, id).Error
	return &teacher, err
}

func (r *teacherRepository) GetByDocument(document string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.Where("document = ?", document).First(&teacher).Error
	return &teacher, err
}

func (r *teacherRepository) GetAll() ([]model.Teacher, error) {
	var list []model.Teacher
	err := r.db.Order("name asc").Find(&list).Error
	return list, err
}

func (r *teacherRepository) Update(teacher *model.Teacher) error {
	return r.db.Save(teacher).Error
}

func (r *teacherRepository) Delete(id uint) error {
	return r.db.Delete(&model.Teacher{}, id).Error
}
