package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL         string
	HTTPPort            string
	LogLevel            string
	LogFormat           string
	JWTSecret           string
	AdminUsername       string
	AdminPassword       string
	AssetBucket         string
	AWSRegion           string
	SignedURLTTLSeconds int
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = Config{
		DatabaseURL:         getEnv("DATABASE_URL", "customer_bot.db"),
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "json"),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		AdminUsername:       getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:       getEnv("ADMIN_PASSWORD", ""),
		AssetBucket:         getEnv("ASSET_BUCKET", "abc-lighting-assets"),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		SignedURLTTLSeconds: getEnvAsInt("SIGNED_URL_TTL_SECONDS", 3600),
	}

	if AppConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	if AppConfig.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD environment variable is required")
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
