package routes

import (
	"timeclass-backend/internal/handler"
	"timeclass-backend/internal/middleware"
	"timeclass-backend/internal/model"
	"timeclass-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB, secret string) {
	repo := repository.NewUserRepository(db)
	hdl := handler.NewAuthHandler(repo, secret)

	auth := app.Group("/auth")
	auth.Post("/login", hdl.Login)

	// Account creation is an admin operation
	auth.Post("/register", middleware.Auth(secret), middleware.Role(model.RoleAdmin), hdl.Register)
}
