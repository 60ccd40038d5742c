package conf

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
	"github.com/otpwatch/ivasms-admin-bot/internal/service"
)

// Config represents application configuration
type Config struct {
	// Telegram configuration
	Telegram TelegramConfig

	// Log sink configuration
	Log LogConfig

	// OTP storage configuration
	Storage StorageConfig

	// Monitor control configuration
	Monitor MonitorConfig

	// Local notification API configuration
	API APIConfig

	// Reply texts (loaded from YAML)
	Messages *MessagesConfig

	// Debug mode
	Debug bool
}

// TelegramConfig contains Telegram configuration
type TelegramConfig struct {
	Token        string
	AdminChatIDs []int64
	rawAdminIDs  string // kept for validation errors
}

// LogConfig contains log sink configuration
type LogConfig struct {
	FilePath string
}

// StorageConfig contains OTP storage configuration
type StorageConfig struct {
	DBPath string
}

// MonitorConfig contains monitor control configuration
type MonitorConfig struct {
	APIURL  string
	Timeout time.Duration // Bound on every storage/monitor call
}

// APIConfig contains notification API configuration
type APIConfig struct {
	Port int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./logs/bot.log"
	}

	dbPath := os.Getenv("OTP_DB_PATH")
	if dbPath == "" {
		dbPath = "./data/otps.db"
	}

	monitorURL := os.Getenv("MONITOR_API_URL")
	if monitorURL == "" {
		monitorURL = "http://127.0.0.1:9877"
	}

	timeoutSec := 10
	if val := os.Getenv("COLLABORATOR_TIMEOUT_SECONDS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	apiPort := 9876
	if val := os.Getenv("BOT_API_PORT"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			apiPort = parsed
		}
	}

	rawAdminIDs := os.Getenv("TELEGRAM_ADMIN_CHAT_IDS")
	adminIDs, _ := ParseChatIDs(rawAdminIDs)

	// Load reply texts from YAML
	messages, err := LoadMessagesConfig(os.Getenv("MESSAGES_CONFIG_PATH"))
	if err != nil {
		messages = DefaultMessagesConfig()
	}

	return &Config{
		Telegram: TelegramConfig{
			Token:        os.Getenv("TELEGRAM_BOT_TOKEN"),
			AdminChatIDs: adminIDs,
			rawAdminIDs:  rawAdminIDs,
		},
		Log: LogConfig{
			FilePath: logFile,
		},
		Storage: StorageConfig{
			DBPath: dbPath,
		},
		Monitor: MonitorConfig{
			APIURL:  strings.TrimRight(monitorURL, "/"),
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		API: APIConfig{
			Port: apiPort,
		},
		Messages: messages,
		Debug:    os.Getenv("DEBUG") == "true",
	}
}

// ParseChatIDs parses a comma-separated list of Telegram chat IDs
func ParseChatIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, &ConfigError{Field: "TELEGRAM_ADMIN_CHAT_IDS", Message: "invalid chat id " + strconv.Quote(part)}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// AdminSet returns the configured admins
func (c *Config) AdminSet() domain.AdminSet {
	return domain.NewAdminSet(c.Telegram.AdminChatIDs)
}

// ToReplyTexts converts to the command service reply texts
func (c *Config) ToReplyTexts() service.ReplyTexts {
	m := c.Messages
	if m == nil {
		m = DefaultMessagesConfig()
	}
	return service.ReplyTexts{
		BotTitle:      m.BotTitle,
		Unauthorized:  m.Unauthorized,
		Hint:          m.Hint,
		GenericError:  m.GenericError,
		InvalidNumber: m.InvalidNumber,
		LogNotFound:   m.LogNotFound,
		LogEmpty:      m.LogEmpty,
		NoOTPs:        m.NoOTPs,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return &ConfigError{Field: "TELEGRAM_BOT_TOKEN", Message: "required"}
	}
	if _, err := ParseChatIDs(c.Telegram.rawAdminIDs); err != nil {
		return err
	}
	if len(c.Telegram.AdminChatIDs) == 0 {
		return &ConfigError{Field: "TELEGRAM_ADMIN_CHAT_IDS", Message: "at least one admin chat id required"}
	}
	if c.Log.FilePath == "" {
		return &ConfigError{Field: "LOG_FILE", Message: "required"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
