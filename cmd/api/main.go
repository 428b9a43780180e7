package main

import (
	"context"
	"log"
	"time"

	"timeclass-backend/config"
	"timeclass-backend/internal/approval"
	"timeclass-backend/internal/mailer"
	"timeclass-backend/internal/repository"
	"timeclass-backend/internal/routes"
	"timeclass-backend/internal/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(env string) *zap.Logger {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.OutputPaths = []string{"stdout"}

	zl, err := cfg.Build()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	return zl
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using system environment variables")
	}

	cfg := config.Load()
	zl := newLogger(cfg.Env)
	defer zl.Sync()

	if err := config.ConnectDB(cfg.DSN); err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	zl.Info("database connected")

	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass,
		cfg.MailFrom, cfg.AdminEmail, zl.Named("mailer"))
	hub := ws.NewHub(zl.Named("hub"))

	// Auto-approval background worker
	worker := approval.NewWorker(
		repository.NewWorkHourRepository(config.DB),
		repository.NewSettingRepository(config.DB),
		mail,
		zl.Named("worker"),
		time.Duration(cfg.WorkerIntervalSeconds)*time.Second,
	)
	worker.Start(context.Background())
	defer worker.Stop()

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New())

	routes.SetupAuthRoutes(app, config.DB, cfg.JWTSecret)
	routes.SetupUserRoutes(app, config.DB, cfg.JWTSecret)
	routes.SetupTeacherRoutes(app, config.DB, cfg.JWTSecret)
	routes.SetupWorkHourRoutes(app, config.DB, cfg.JWTSecret)
	routes.SetupClaimRoutes(app, config.DB, hub, mail, cfg.JWTSecret)
	routes.SetupSettingRoutes(app, config.DB, cfg.JWTSecret)
	routes.SetupDashboardRoutes(app, config.DB, cfg.JWTSecret)
	routes.SetupReportRoutes(app, config.DB, cfg.JWTSecret)
	routes.SetupWSRoutes(app, hub, zl.Named("ws"), cfg.JWTSecret)

	zl.Info("server listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
