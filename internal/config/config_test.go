package config

import (
	"log/slog"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MAX_UPLOAD_BYTES", "DB_PATH", "AMQP_URL", "AMQP_EXCHANGE", "AMQP_QUEUE", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.MaxUploadBytes != 5<<20 {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes, 5<<20)
	}
	if cfg.DBPath != "./data/bank.db" {
		t.Errorf("DBPath = %q, want ./data/bank.db", cfg.DBPath)
	}
	if cfg.AMQPURL != "" {
		t.Errorf("AMQPURL = %q, want empty", cfg.AMQPURL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.MaxUploadBytes != 1<<20 {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes, 1<<20)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel = %v, want debug", cfg.SlogLevel())
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Port:           "8080",
		MaxUploadBytes: 5 << 20,
		DBPath:         ":memory:",
		LogLevel:       "info",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Port:           "not-a-port",
		MaxUploadBytes: 100,
		DBPath:         ":memory:",
		AMQPURL:        "http://localhost:5672",
		AMQPExchange:   "",
		AMQPQueue:      "",
		LogLevel:       "verbose",
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}

	for _, want := range []string{
		"invalid port",
		"invalid max upload size",
		"must be 'amqp' or 'amqps'",
		"exchange name cannot be empty",
		"queue name cannot be empty",
		"invalid log level",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error missing %q:\n%v", want, err)
		}
	}
}

func TestValidatePortRange(t *testing.T) {
	cfg := &Config{
		Port:           "70000",
		MaxUploadBytes: 5 << 20,
		DBPath:         ":memory:",
		LogLevel:       "info",
	}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "between 1 and 65535") {
		t.Errorf("Validate() = %v, want port range error", err)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		if got := cfg.SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
