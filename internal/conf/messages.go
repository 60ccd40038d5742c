package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MessagesConfig contains the operator-facing reply texts loaded from YAML.
// All values are plain text; they are escaped when rendered as MarkdownV2.
type MessagesConfig struct {
	BotTitle      string `yaml:"bot_title"`
	Unauthorized  string `yaml:"unauthorized"`
	Hint          string `yaml:"hint"`
	GenericError  string `yaml:"generic_error"`
	InvalidNumber string `yaml:"invalid_number"`
	LogNotFound   string `yaml:"log_not_found"`
	LogEmpty      string `yaml:"log_empty"`
	NoOTPs        string `yaml:"no_otps"`
	Started       string `yaml:"started"`
}

// LoadMessagesConfig loads reply texts from a YAML file
func LoadMessagesConfig(configPath string) (*MessagesConfig, error) {
	// Try multiple paths
	paths := []string{configPath}
	if configPath == "" {
		paths = []string{
			"configs/messages.yaml",
			"/etc/ivasms-admin-bot/messages.yaml",
		}
		// Add path relative to executable
		if execPath, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(execPath), "configs", "messages.yaml"))
		}
	}

	var data []byte
	var loadedPath string
	var err error

	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			loadedPath = p
			break
		}
	}

	if data == nil {
		fmt.Println("[Config] No messages.yaml found, using defaults")
		return DefaultMessagesConfig(), nil
	}

	fmt.Printf("[Config] Loading messages from: %s\n", loadedPath)

	var config MessagesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse messages.yaml: %w", err)
	}

	config.fillDefaults()
	return &config, nil
}

// fillDefaults fills in default values for empty fields
func (c *MessagesConfig) fillDefaults() {
	defaults := DefaultMessagesConfig()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&c.BotTitle, defaults.BotTitle)
	fill(&c.Unauthorized, defaults.Unauthorized)
	fill(&c.Hint, defaults.Hint)
	fill(&c.GenericError, defaults.GenericError)
	fill(&c.InvalidNumber, defaults.InvalidNumber)
	fill(&c.LogNotFound, defaults.LogNotFound)
	fill(&c.LogEmpty, defaults.LogEmpty)
	fill(&c.NoOTPs, defaults.NoOTPs)
	fill(&c.Started, defaults.Started)
}

// DefaultMessagesConfig returns the built-in reply texts
func DefaultMessagesConfig() *MessagesConfig {
	return &MessagesConfig{
		BotTitle:      "iVASMS Telegram Bot",
		Unauthorized:  "❌ Unauthorized access",
		Hint:          "ℹ️ Use /start to see available commands",
		GenericError:  "❌ An error occurred while processing your command. Admins have been notified.",
		InvalidNumber: "❌ Invalid number format",
		LogNotFound:   "📄 Log file not found",
		LogEmpty:      "📄 Log file is empty",
		NoOTPs:        "📭 No OTPs stored yet",
		Started:       "Bot started",
	}
}
