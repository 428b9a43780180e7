package routes

import (
	"timeclass-backend/internal/handler"
	"timeclass-backend/internal/middleware"
	"timeclass-backend/internal/model"
	"timeclass-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupReportRoutes(app *fiber.App, db *gorm.DB, secret string) {
	workHourRepo := repository.NewWorkHourRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	hdl := handler.NewReportHandler(workHourRepo, teacherRepo)

	reports := app.Group("/reports", middleware.Auth(secret), middleware.Role(model.RoleAdmin))
	reports.Get("/work-hours/csv", hdl.ExportCSV)
	reports.Post("/work-hours/import", hdl.ImportCSV)
}
