package conf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_ADMIN_CHAT_IDS", "111, -222")
	t.Setenv("LOG_FILE", "")
	t.Setenv("OTP_DB_PATH", "")
	t.Setenv("MONITOR_API_URL", "http://monitor:9000/")
	t.Setenv("COLLABORATOR_TIMEOUT_SECONDS", "")
	t.Setenv("MESSAGES_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := LoadFromEnv()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Unexpected validation error: %v", err)
	}
	if cfg.Log.FilePath != "./logs/bot.log" {
		t.Errorf("Expected default log path, got %q", cfg.Log.FilePath)
	}
	if cfg.Storage.DBPath != "./data/otps.db" {
		t.Errorf("Expected default db path, got %q", cfg.Storage.DBPath)
	}
	if cfg.Monitor.APIURL != "http://monitor:9000" {
		t.Errorf("Expected trailing slash trimmed, got %q", cfg.Monitor.APIURL)
	}
	if cfg.Monitor.Timeout != 10*time.Second {
		t.Errorf("Expected 10s timeout, got %v", cfg.Monitor.Timeout)
	}

	admins := cfg.AdminSet()
	if !admins.Contains(111) || !admins.Contains(-222) || admins.Len() != 2 {
		t.Errorf("Unexpected admins %v", admins.IDs())
	}
	if cfg.Messages == nil || cfg.Messages.Hint == "" {
		t.Error("Expected default messages")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		token string
		ids   string
		field string
	}{
		{"missing token", "", "1", "TELEGRAM_BOT_TOKEN"},
		{"missing admins", "tok", "", "TELEGRAM_ADMIN_CHAT_IDS"},
		{"bad admin id", "tok", "1,abc", "TELEGRAM_ADMIN_CHAT_IDS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TELEGRAM_BOT_TOKEN", tt.token)
			t.Setenv("TELEGRAM_ADMIN_CHAT_IDS", tt.ids)
			t.Setenv("MESSAGES_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

			err := LoadFromEnv().Validate()
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Expected ConfigError, got %v", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, ce.Field)
			}
		})
	}
}

func TestLoadMessagesConfig_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	content := "unauthorized: \"Access denied\"\nhint: \"Try /start\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMessagesConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Unauthorized != "Access denied" || cfg.Hint != "Try /start" {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	if cfg.LogEmpty != DefaultMessagesConfig().LogEmpty {
		t.Errorf("Expected default for unset field, got %q", cfg.LogEmpty)
	}
}

func TestLoadMessagesConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	if err := os.WriteFile(path, []byte("hint: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadMessagesConfig(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestToReplyTexts(t *testing.T) {
	cfg := &Config{}
	texts := cfg.ToReplyTexts()
	if texts.Unauthorized != DefaultMessagesConfig().Unauthorized {
		t.Errorf("Expected default unauthorized text, got %q", texts.Unauthorized)
	}
}
