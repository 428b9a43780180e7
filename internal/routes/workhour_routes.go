package routes

import (
	"timeclass-backend/internal/handler"
	"timeclass-backend/internal/middleware"
	"timeclass-backend/internal/model"
	"timeclass-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupWorkHourRoutes(app *fiber.App, db *gorm.DB, secret string) {
	repo := repository.NewWorkHourRepository(db)
	hdl := handler.NewWorkHourHandler(repo)

	workHours := app.Group("/work-hours", middleware.Auth(secret))

	workHours.Get("/teacher/:teacherId", hdl.GetByTeacher)

	// Confirm / re-confirm path of the approval cycle
	workHours.Put("/status/:id", hdl.UpdateStatus)

	admin := workHours.Group("", middleware.Role(model.RoleAdmin))
	admin.Post("/", hdl.Create)
	admin.Get("/", hdl.GetAll)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Delete)
}
