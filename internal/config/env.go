package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DoclingAPIKey string
	AwsAccessKey  string
	AwsSecretKey  string
	AwsRegion     string
	AuthSecret    string
	MaxCharBuffer int
}

// LoadConfig loads the environment variables and return config
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DoclingAPIKey: getEnv("DOCLING_API_KEY", ""),
		AwsAccessKey:  getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey:  getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:     getEnv("AWS_REGION", "us-east-2"),
		AuthSecret:    getEnv("AUTH_SECRET", ""),
		MaxCharBuffer: getEnvInt("MAX_CHAR_BUFFER", 8000),
	}

	// DOCLING_API_KEY is not required at startup; the provider reads the
	// environment again when it is constructed for a request.
	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}
