package model

import "gorm.io/gorm"

const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
)

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique;not null"`
	Password string `json:"-"`
	Role     string `json:"role" gorm:"default:TEACHER"`

	// Set when the account belongs to a teacher
	TeacherID *uint    `json:"teacher_id"`
	Teacher   *Teacher `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
}
