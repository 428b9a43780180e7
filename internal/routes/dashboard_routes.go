package routes

import (
	"timeclass-backend/internal/handler"
	"timeclass-backend/internal/middleware"
	"timeclass-backend/internal/model"
	"timeclass-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupDashboardRoutes(app *fiber.App, db *gorm.DB, secret string) {
	repo := repository.NewDashboardRepository(db)
	hdl := handler.NewDashboardHandler(repo)

	dashboard := app.Group("/dashboard", middleware.Auth(secret), middleware.Role(model.RoleAdmin))
	dashboard.Get("/stats", hdl.GetStats)
}
