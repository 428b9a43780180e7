package routes

import (
	"timeclass-backend/internal/handler"
	"timeclass-backend/internal/middleware"
	"timeclass-backend/internal/model"
	"timeclass-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupTeacherRoutes(app *fiber.App, db *gorm.DB, secret string) {
	repo := repository.NewTeacherRepository(db)
	hdl := handler.NewTeacherHandler(repo)

	teachers := app.Group("/teachers", middleware.Auth(secret))

	// Listing is available to every authenticated role
	teachers.Get("/", hdl.GetAll)
	teachers.Get("/:id", hdl.GetByID)

	admin := teachers.Group("", middleware.Role(model.RoleAdmin))
	admin.Post("/", hdl.Create)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Delete)
}
