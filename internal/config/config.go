package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string
	Env             string
	MySQLDSN        string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	SessionSecret   string
	SessionTTLHours int
	MapsAPIKey      string
	GeminiAPIKey    string
	GeminiModel     string
	// Service account credentials: inline JSON takes precedence over the file path.
	FirebaseCredentials    string
	FirebaseServiceAccount string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:             getEnv("SERVER_PORT", "8080"),
		Env:                    getEnv("APP_ENV", "development"),
		MySQLDSN:               getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/safepass?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:                getEnvInt("REDIS_DB", 0),
		RedisPass:              os.Getenv("REDIS_PASSWORD"),
		SessionSecret:          os.Getenv("SESSION_SECRET"),
		SessionTTLHours:        getEnvInt("SESSION_TTL_HOURS", 24),
		MapsAPIKey:             os.Getenv("GOOGLE_MAPS_API_KEY"),
		GeminiAPIKey:           os.Getenv("GEMINI_API_KEY"),
		GeminiModel:            getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		FirebaseCredentials:    os.Getenv("FIREBASE_CREDENTIALS"),
		FirebaseServiceAccount: getEnv("FIREBASE_SERVICE_ACCOUNT", "serviceAccountKey.json"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
