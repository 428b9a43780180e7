package config

import (
	"os"
	"strconv"
)

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

type Config struct {
	Env       string
	Port      string
	DSN       string
	JWTSecret string

	// SMTP for claim / auto-approval notification mails.
	// Empty SMTPHost disables sending.
	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	MailFrom   string
	AdminEmail string

	// Auto-approval worker pass interval, in seconds
	WorkerIntervalSeconds int
}

func Load() *Config {
	return &Config{
		Env:       GetEnv("APP_ENV", "development"),
		Port:      GetEnv("PORT", "3000"),
		DSN:       GetEnv("DATABASE_DSN", "root:@tcp(127.0.0.1:3306)/timeclass?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret: GetEnv("JWT_SECRET", "timeclass-dev-secret"),

		SMTPHost:   GetEnv("SMTP_HOST", ""),
		SMTPPort:   GetEnvAsInt("SMTP_PORT", 587),
		SMTPUser:   GetEnv("SMTP_USER", ""),
		SMTPPass:   GetEnv("SMTP_PASS", ""),
		MailFrom:   GetEnv("MAIL_FROM", "timeclass@localhost"),
		AdminEmail: GetEnv("ADMIN_EMAIL", ""),

		WorkerIntervalSeconds: GetEnvAsInt("WORKER_INTERVAL_SECONDS", 60),
	}
}
