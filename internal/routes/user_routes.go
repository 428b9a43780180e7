package routes

import (
	"timeclass-backend/internal/handler"
	"timeclass-backend/internal/middleware"
	"timeclass-backend/internal/model"
	"timeclass-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUserRoutes(app *fiber.App, db *gorm.DB, secret string) {
	repo := repository.NewUserRepository(db)
	hdl := handler.NewUserHandler(repo)

	users := app.Group("/users", middleware.Auth(secret), middleware.Role(model.RoleAdmin))
	users.Get("/", hdl.GetAll)
	users.Get("/:id", hdl.GetByID)
	users.Put("/:id", hdl.Update)
	users.Delete("/:id", hdl.Delete)
}
