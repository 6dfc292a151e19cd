package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServerPort string
	JWTSecret  string
	TokenTTL   time.Duration
	Mongo      MongoConfig
	Logging    LoggingConfig
	Upload     UploadConfig
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type LoggingConfig struct {
	Level        string
	Encoding     string
	Development  bool
	EnableCaller bool
	ServiceName  string
}

type UploadConfig struct {
	AvatarMaxBytes int64
}

func LoadConfig() (*Config, error) {
	logging := LoggingConfig{
		Level:        strings.ToLower(envOrDefault("LOG_LEVEL", "info")),
		Encoding:     strings.ToLower(envOrDefault("LOG_ENCODING", "console")),
		Development:  parseBool(envOrDefault("LOG_DEVELOPMENT", "false"), false),
		EnableCaller: parseBool(envOrDefault("LOG_CALLER", "false"), false),
		ServiceName:  envOrDefault("SERVICE_NAME", "taskhive"),
	}

	cfg := &Config{
		ServerPort: envOrDefault("PORT", "8080"),
		JWTSecret:  envOrDefault("JWT_SECRET", "dev-secret"),
		TokenTTL:   parseDuration(envOrDefault("TOKEN_TTL", "24h"), 24*time.Hour),
		Mongo: MongoConfig{
			URI:            os.Getenv("MONGO_URI"),
			Database:       envOrDefault("MONGO_DATABASE", "taskhive"),
			ConnectTimeout: parseDuration(envOrDefault("MONGO_CONNECT_TIMEOUT", "5s"), 5*time.Second),
		},
		Logging: logging,
		Upload: UploadConfig{
			AvatarMaxBytes: parseInt64(envOrDefault("AVATAR_MAX_BYTES", "1000000"), 1_000_000),
		},
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt64(value string, fallback int64) int64 {
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil || i <= 0 {
		return fallback
	}
	return i
}

func parseBool(value string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return v
}
