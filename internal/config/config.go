package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port              string
	Environment       string
	AllowedOrigins    []string
	FrontendURL       string
	SearchDepth       int
	DefaultDifficulty string
	RedisURL          string
	RedisPassword     string
	MoveCacheTTL      time.Duration
	JWTSecret         string
	GameTokenTTL      time.Duration
	SessionIdleTime   time.Duration
	CleanupInterval   time.Duration
	LogLevel          string
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")
	environment := GetEnv("ENVIRONMENT", "development")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	// Build allowed origins list (Frontend URL + CSV values)
	allowedOrigins := []string{frontendURL}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Search
	searchDepth := GetEnvAsInt("SEARCH_DEPTH", 5)
	if searchDepth < 1 {
		log.Warn().Int("value", searchDepth).Msg("SEARCH_DEPTH must be positive, using 5")
		searchDepth = 5
	}
	defaultDifficulty := GetEnv("DEFAULT_DIFFICULTY", "hard")

	// Move cache
	redisURL := GetEnv("REDIS_URL", "")
	redisPassword := GetEnv("REDIS_PASSWORD", "")
	moveCacheTTL := GetEnvAsMinutes("MOVE_CACHE_TTL_MINUTES", 24*60)

	// Security
	jwtSecret := GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production")
	gameTokenTTL := time.Duration(GetEnvAsInt("GAME_TOKEN_TTL_HOURS", 24)) * time.Hour

	// Sessions
	sessionIdle := GetEnvAsPositiveMinutes("SESSION_IDLE_TIMEOUT_MINUTES", 30)
	cleanupInterval := GetEnvAsPositiveMinutes("CLEANUP_INTERVAL_MINUTES", 5)

	AppConfig = &Config{
		Port:              port,
		Environment:       environment,
		AllowedOrigins:    allowedOrigins,
		FrontendURL:       frontendURL,
		SearchDepth:       searchDepth,
		DefaultDifficulty: defaultDifficulty,
		RedisURL:          redisURL,
		RedisPassword:     redisPassword,
		MoveCacheTTL:      moveCacheTTL,
		JWTSecret:         jwtSecret,
		GameTokenTTL:      gameTokenTTL,
		SessionIdleTime:   sessionIdle,
		CleanupInterval:   cleanupInterval,
		LogLevel:          GetEnv("LOG_LEVEL", "info"),
	}

	return AppConfig
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("invalid integer, using default")
		return defaultValue
	}
	return value
}

func GetEnvAsMinutes(key string, defaultMinutes int) time.Duration {
	return time.Duration(GetEnvAsInt(key, defaultMinutes)) * time.Minute
}

// GetEnvAsPositiveMinutes is GetEnvAsMinutes for settings where zero or less
// makes no sense, such as ticker intervals.
func GetEnvAsPositiveMinutes(key string, defaultMinutes int) time.Duration {
	minutes := GetEnvAsInt(key, defaultMinutes)
	if minutes < 1 {
		log.Warn().Str("key", key).Int("value", minutes).Int("default", defaultMinutes).Msg("value must be positive, using default")
		minutes = defaultMinutes
	}
	return time.Duration(minutes) * time.Minute
}
