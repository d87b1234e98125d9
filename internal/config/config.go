package config

import (
	"os"
	"strconv"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort        string
	MySQLDSN          string
	RedisAddr         string
	RedisDB           int
	RedisPass         string
	SessionStore      string
	SessionTTLMinutes int
	SwaggerHost       string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		MySQLDSN:          getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/movievault?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		SessionStore:      getEnv("SESSION_STORE", SessionStoreMemory),
		SessionTTLMinutes: getEnvInt("SESSION_TTL_MINUTES", 0),
		SwaggerHost:       os.Getenv("SWAGGER_HOST"),
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
