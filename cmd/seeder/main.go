package main

import (
	"log"

	"timeclass-backend/config"
	"timeclass-backend/internal/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using system environment variables")
	}

	cfg := config.Load()
	if err := config.ConnectDB(cfg.DSN); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	database.SeedAll(config.DB)
}
