package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr    string
	PostgresDSN string
	LogLevel    string

	JWTSecret     string
	TokenTTLHours int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LoginRateLimit         int
	LoginRateWindowSeconds int
	LoginRateMaxKeys       int
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:               addr,
		PostgresDSN:            os.Getenv("POSTGRES_DSN"),
		LogLevel:               envDefault("LOG_LEVEL", "info"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		TokenTTLHours:          envIntDefault("TOKEN_TTL_HOURS", 24),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:                envIntDefault("REDIS_DB", 0),
		LoginRateLimit:         envIntDefault("LOGIN_RATE_LIMIT", 0),
		LoginRateWindowSeconds: envIntDefault("LOGIN_RATE_WINDOW_SECONDS", 60),
		LoginRateMaxKeys:       envIntDefault("LOGIN_RATE_MAX_KEYS", 10000),
	}
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func (c Config) TokenTTL() time.Duration {
	if c.TokenTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.TokenTTLHours) * time.Hour
}

func (c Config) LoginRateWindow() time.Duration {
	if c.LoginRateWindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.LoginRateWindowSeconds) * time.Second
}
