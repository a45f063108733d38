package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment. It is
// loaded once in main and handed to constructors; no package keeps a global
// copy.
type Config struct {
	Port      string
	Env       string
	DBPath    string
	JWTSecret string
	RedisURL  string

	SMTPHost   string
	SMTPPort   string
	SMTPUser   string
	SMTPPass   string
	SenderName string
}

// Load reads .env if one exists, then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("APP_ENV", "development"),
		DBPath:    getEnv("DB_PATH", "food_ordering.db"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		RedisURL:  getEnv("REDIS_URL", "redis://localhost:6379"),

		SMTPHost:   getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:   getEnv("SMTP_PORT", "587"),
		SMTPUser:   os.Getenv("SMTP_USER"),
		SMTPPass:   os.Getenv("SMTP_PASS"),
		SenderName: getEnv("SMTP_SENDER_NAME", "Chuks Kitchen"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
