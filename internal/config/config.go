package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

// Config holds runtime configuration values for the BlogForge server.
type Config struct {
	DBPath         string
	ServerPort     int
	LogLevel       string
	LLMEndpoint    string
	LLMAPIKey      string
	LLMModel       string
	LLMTimeout     time.Duration
	LLMMaxAttempts int
	SentryDSN      string
	Environment    string
	ShutdownGrace  time.Duration
}

const (
	defaultDBPath        = "./data/blogforge.db"
	defaultServerPort    = 8080
	defaultLogLevel      = "info"
	defaultEnvironment   = "development"
	defaultLLMModel      = "mistralai/Mistral-7B-Instruct-v0.1"
	defaultLLMTimeout    = 120 * time.Second
	defaultLLMAttempts   = 3
	defaultShutdownGrace = 10 * time.Second
)

// Load reads configuration values from environment variables, applying defaults where necessary.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:        getEnv("DB_PATH", defaultDBPath),
		LogLevel:      getEnv("LOG_LEVEL", defaultLogLevel),
		LLMEndpoint:   os.Getenv("LLM_ENDPOINT"),
		LLMAPIKey:     os.Getenv("LLM_API_KEY"),
		LLMModel:      getEnv("LLM_MODEL", defaultLLMModel),
		SentryDSN:     os.Getenv("SENTRY_DSN"),
		Environment:   getEnv("ENV", defaultEnvironment),
		ShutdownGrace: defaultShutdownGrace,
	}

	portValue := getEnv("SERVER_PORT", strconv.Itoa(defaultServerPort))
	port, err := strconv.Atoi(portValue)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid SERVER_PORT value: %s", portValue)
	}
	cfg.ServerPort = port

	timeout, err := getDurationEnv("LLM_TIMEOUT", defaultLLMTimeout)
	if err != nil {
		return nil, err
	}
	cfg.LLMTimeout = timeout

	attemptsValue := getEnv("LLM_MAX_ATTEMPTS", strconv.Itoa(defaultLLMAttempts))
	attempts, err := strconv.Atoi(attemptsValue)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid LLM_MAX_ATTEMPTS value: %s", attemptsValue)
	}
	if attempts < 1 {
		return nil, eris.Errorf("LLM_MAX_ATTEMPTS must be at least 1, got %d", attempts)
	}
	cfg.LLMMaxAttempts = attempts

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s value: %s", key, value)
	}

	return parsed, nil
}
