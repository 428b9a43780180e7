package database

import (
	"log"

	"timeclass-backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedAll(db *gorm.DB) {
	// 1. Default approval window: 4 days
	setting := model.Setting{AutoApproveAmount: 4, AutoApproveUnit: model.UnitDays}
	db.FirstOrCreate(&setting, model.Setting{})

	// 2. Sample teachers
	teachers := []model.Teacher{
		{Name: "Maria Gonzalez", Email: "maria.gonzalez@timeclass.local", Document: "10000001", Specialty: "Mathematics", IsActive: true},
		{Name: "Carlos Perez", Email: "carlos.perez@timeclass.local", Document: "10000002", Specialty: "History", IsActive: true},
	}
	for i := range teachers {
		db.FirstOrCreate(&teachers[i], model.Teacher{Document: teachers[i].Document})
	}

	// 3. Admin account
	adminPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := model.User{
		Name:     "Administrator",
		Email:    "admin@timeclass.local",
		Password: string(adminPassword),
		Role:     model.RoleAdmin,
	}
	db.FirstOrCreate(&admin, model.User{Email: admin.Email})

	// 4. One login per teacher
	teacherPassword, _ := bcrypt.GenerateFromPassword([]byte("teacher123"), bcrypt.DefaultCost)
	for i := range teachers {
		user := model.User{
			Name:      teachers[i].Name,
			Email:     teachers[i].Email,
			Password:  string(teacherPassword),
			Role:      model.RoleTeacher,
			TeacherID: &teachers[i].ID,
		}
		db.FirstOrCreate(&user, model.User{Email: user.Email})
	}

	// 5. Sample pending work-hours for the first teacher
	workHours := []model.WorkHour{
		{TeacherID: teachers[0].ID, Date: "2025-08-25", FixedHours: "08:00", TaughtHours: "07:30", Lateness: "00:30", Status: model.StatusPending},
		{TeacherID: teachers[0].ID, Date: "2025-08-26", FixedHours: "08:00", TaughtHours: "08:00", Status: model.StatusPending},
	}
	for i := range workHours {
		db.FirstOrCreate(&workHours[i], model.WorkHour{TeacherID: workHours[i].TeacherID, Date: workHours[i].Date})
	}

	log.Println("Seeding done")
}
