package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("default shutdown timeout = %v, want 30s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Upload.MaxFileSize != 100*1024*1024 {
		t.Errorf("default max file size = %d, want 100MB", cfg.Upload.MaxFileSize)
	}
	if !cfg.Rate.Enabled {
		t.Error("rate limiting should default to enabled")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("default logging = %q/%q, want info/text", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9001")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("UPLOAD_MAX_FILE_SIZE", "1024")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9001 {
		t.Errorf("port = %d, want 9001", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("read timeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Upload.MaxFileSize != 1024 {
		t.Errorf("max file size = %d, want 1024", cfg.Upload.MaxFileSize)
	}
	if cfg.Rate.Enabled {
		t.Error("rate limiting should be disabled")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("log format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		value   string
		wantMsg string
	}{
		{"bad port", "SERVER_PORT", "0", "SERVER_PORT"},
		{"port not a number", "SERVER_PORT", "eighty", "invalid integer"},
		{"bad duration", "SERVER_READ_TIMEOUT", "fast", "invalid duration"},
		{"bad file size", "UPLOAD_MAX_FILE_SIZE", "-1", "UPLOAD_MAX_FILE_SIZE"},
		{"bad log level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"bad log format", "LOG_FORMAT", "xml", "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			_, err := Load()
			if err == nil {
				t.Fatalf("Load() with %s=%s should fail", tt.env, tt.value)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}
