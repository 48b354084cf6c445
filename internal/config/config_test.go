package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LLM_ENDPOINT", "")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("LLM_TIMEOUT", "")
	t.Setenv("LLM_MAX_ATTEMPTS", "")
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DBPath != defaultDBPath {
		t.Errorf("expected default DB path %q, got %q", defaultDBPath, cfg.DBPath)
	}

	if cfg.ServerPort != defaultServerPort {
		t.Errorf("expected default server port %d, got %d", defaultServerPort, cfg.ServerPort)
	}

	if cfg.LogLevel != defaultLogLevel {
		t.Errorf("expected default log level %q, got %q", defaultLogLevel, cfg.LogLevel)
	}

	if cfg.Environment != defaultEnvironment {
		t.Errorf("expected default environment %q, got %q", defaultEnvironment, cfg.Environment)
	}

	if cfg.LLMModel != defaultLLMModel {
		t.Errorf("expected default model %q, got %q", defaultLLMModel, cfg.LLMModel)
	}

	if cfg.LLMTimeout != defaultLLMTimeout {
		t.Errorf("expected default LLM timeout %s, got %s", defaultLLMTimeout, cfg.LLMTimeout)
	}

	if cfg.LLMMaxAttempts != defaultLLMAttempts {
		t.Errorf("expected default max attempts %d, got %d", defaultLLMAttempts, cfg.LLMMaxAttempts)
	}

	if cfg.ShutdownGrace != defaultShutdownGrace {
		t.Errorf("expected shutdown grace %s, got %s", defaultShutdownGrace, cfg.ShutdownGrace)
	}

	if cfg.LLMEndpoint != "" {
		t.Errorf("expected empty LLM endpoint, got %q", cfg.LLMEndpoint)
	}

	if cfg.LLMAPIKey != "" {
		t.Errorf("expected empty LLM API key, got %q", cfg.LLMAPIKey)
	}

	if cfg.SentryDSN != "" {
		t.Errorf("expected empty Sentry DSN, got %q", cfg.SentryDSN)
	}
}

func TestLoadWithExplicitValues(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/blogforge.db")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LLM_ENDPOINT", "https://example.com/llm")
	t.Setenv("LLM_API_KEY", "secret")
	t.Setenv("LLM_MODEL", "mistralai/Mixtral-8x7B-Instruct-v0.1")
	t.Setenv("LLM_TIMEOUT", "45s")
	t.Setenv("LLM_MAX_ATTEMPTS", "5")
	t.Setenv("SENTRY_DSN", "dsn")
	t.Setenv("ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DBPath != "/tmp/blogforge.db" {
		t.Errorf("expected DB path %q, got %q", "/tmp/blogforge.db", cfg.DBPath)
	}

	if cfg.ServerPort != 9090 {
		t.Errorf("expected server port 9090, got %d", cfg.ServerPort)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}

	if cfg.LLMEndpoint != "https://example.com/llm" {
		t.Errorf("expected LLM endpoint to be set, got %q", cfg.LLMEndpoint)
	}

	if cfg.LLMAPIKey != "secret" {
		t.Errorf("expected LLM API key secret, got %q", cfg.LLMAPIKey)
	}

	if cfg.LLMModel != "mistralai/Mixtral-8x7B-Instruct-v0.1" {
		t.Errorf("expected explicit model, got %q", cfg.LLMModel)
	}

	if cfg.LLMTimeout != 45*time.Second {
		t.Errorf("expected LLM timeout 45s, got %s", cfg.LLMTimeout)
	}

	if cfg.LLMMaxAttempts != 5 {
		t.Errorf("expected max attempts 5, got %d", cfg.LLMMaxAttempts)
	}

	if cfg.SentryDSN != "dsn" {
		t.Errorf("expected Sentry DSN dsn, got %q", cfg.SentryDSN)
	}

	if cfg.Environment != "production" {
		t.Errorf("expected environment production, got %q", cfg.Environment)
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid SERVER_PORT")
	} else if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Fatalf("expected error to mention SERVER_PORT, got %v", err)
	}
}

func TestLoadRejectsInvalidTimeout(t *testing.T) {
	t.Setenv("LLM_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid LLM_TIMEOUT")
	}
}

func TestLoadRejectsNonPositiveAttempts(t *testing.T) {
	t.Setenv("LLM_MAX_ATTEMPTS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for LLM_MAX_ATTEMPTS of zero")
	}
}
