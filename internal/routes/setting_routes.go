package routes

import (
	"timeclass-backend/internal/handler"
	"timeclass-backend/internal/middleware"
	"timeclass-backend/internal/model"
	"timeclass-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupSettingRoutes(app *fiber.App, db *gorm.DB, secret string) {
	repo := repository.NewSettingRepository(db)
	hdl := handler.NewSettingHandler(repo)

	setting := app.Group("/setting", middleware.Auth(secret))
	setting.Get("/", hdl.Get)
	setting.Put("/", middleware.Role(model.RoleAdmin), hdl.Update)
}
