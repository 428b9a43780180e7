package model

import "gorm.io/gorm"

type Teacher struct {
	gorm.Model
	Name      string `json:"name"`
	Email     string `json:"email"`
	Document  string `json:"document" gorm:"unique;not null"`
	Specialty string `json:"specialty"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`

	WorkHours []WorkHour `json:"work_hours,omitempty" gorm:"foreignKey:TeacherID"`
}
