package routes

import (
	"timeclass-backend/internal/handler"
	"timeclass-backend/internal/mailer"
	"timeclass-backend/internal/middleware"
	"timeclass-backend/internal/repository"
	"timeclass-backend/internal/ws"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupClaimRoutes(app *fiber.App, db *gorm.DB, hub *ws.Hub, mail *mailer.Mailer, secret string) {
	claimRepo := repository.NewClaimRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	workHourRepo := repository.NewWorkHourRepository(db)

	hdl := handler.NewClaimHandler(claimRepo, commentRepo, teacherRepo, workHourRepo, hub, mail)

	claims := app.Group("/claims", middleware.Auth(secret))
	claims.Post("/", hdl.Create)
	claims.Get("/work-hour/:workHourId", hdl.GetByWorkHour)
	claims.Get("/comments/:claimId", hdl.GetComments)
	claims.Post("/comments", hdl.CreateComment)
}
