package data

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz/repo"
	"github.com/otpwatch/ivasms-admin-bot/internal/conf"
)

// configViewRepo renders non-secret settings from the loaded configuration
type configViewRepo struct {
	cfg     *conf.Config
	botName string
	version string
}

// NewConfigViewRepo creates the /config and /info view
func NewConfigViewRepo(cfg *conf.Config, botName, version string) repo.ConfigViewRepo {
	return &configViewRepo{cfg: cfg, botName: botName, version: version}
}

// ConfigView renders the effective configuration with the token masked
func (r *configViewRepo) ConfigView(ctx context.Context) (string, error) {
	admins := make([]string, 0, len(r.cfg.Telegram.AdminChatIDs))
	for _, id := range r.cfg.AdminSet().Sorted() {
		admins = append(admins, strconv.FormatInt(id, 10))
	}

	var b strings.Builder
	b.WriteString("⚙️ *Configuration*\n\n")
	b.WriteString("Bot Token: `" + domain.EscapeCode(maskToken(r.cfg.Telegram.Token)) + "`\n")
	b.WriteString("Admins: `" + strings.Join(admins, ", ") + "`\n")
	b.WriteString("Log File: `" + domain.EscapeCode(r.cfg.Log.FilePath) + "`\n")
	b.WriteString("OTP Database: `" + domain.EscapeCode(r.cfg.Storage.DBPath) + "`\n")
	b.WriteString("Monitor API: `" + domain.EscapeCode(r.cfg.Monitor.APIURL) + "`\n")
	b.WriteString("Timeout: " + domain.EscapeMarkdown(r.cfg.Monitor.Timeout.String()) + "\n")
	b.WriteString(fmt.Sprintf("Debug: %t\n", r.cfg.Debug))
	return b.String(), nil
}

// InfoView renders bot identity and version
func (r *configViewRepo) InfoView(ctx context.Context) (string, error) {
	var b strings.Builder
	b.WriteString("ℹ️ *Bot Info*\n\n")
	if r.botName != "" {
		b.WriteString("Bot: @" + domain.EscapeMarkdown(r.botName) + "\n")
	}
	b.WriteString("Version: " + domain.EscapeMarkdown(r.version) + "\n")
	b.WriteString(fmt.Sprintf("Admins: %d\n", len(r.cfg.Telegram.AdminChatIDs)))
	return b.String(), nil
}

// maskToken keeps the bot id prefix and the last 4 characters
func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	id, secret, ok := strings.Cut(token, ":")
	if !ok || len(secret) <= 4 {
		return "****"
	}
	return id + ":****" + secret[len(secret)-4:]
}
