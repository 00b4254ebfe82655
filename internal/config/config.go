package config

import (
	"os"
	"strings"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Port        string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBDatabase  string
	RedisAddr   string
	CORSOrigins []string
	JWTSecret   string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration from environment variables,
// falling back to local-development defaults.
func Load() Config {
	return Config{
		Port:        getenv("PORT", "8080"),
		DBUser:      getenv("DB_USER", "root"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBHost:      getenv("DB_HOST", "localhost"),
		DBPort:      getenv("DB_PORT", "3306"),
		DBDatabase:  getenv("DB_DATABASE", "client-db"),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		CORSOrigins: strings.Split(getenv("CORS_ORIGINS", "*"), ","),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}
}
