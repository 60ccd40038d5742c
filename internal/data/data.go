package data

import (
	"net/http"

	"github.com/otpwatch/ivasms-admin-bot/internal/biz/repo"
	"github.com/otpwatch/ivasms-admin-bot/internal/conf"
	"github.com/otpwatch/ivasms-admin-bot/internal/infra/telegram"
)

// Repositories contains all repositories
type Repositories struct {
	Message    repo.MessageRepo
	Storage    repo.StorageRepo
	Monitor    repo.MonitorRepo
	Logs       repo.LogRepo
	ConfigView repo.ConfigViewRepo
}

// NewRepositories creates all repositories
func NewRepositories(cfg *conf.Config, telegramClient *telegram.Client, version string) (*Repositories, error) {
	storageRepo, err := NewStorageRepo(cfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}

	// Per-request deadlines come from the usecase context; this bounds stragglers
	httpClient := &http.Client{Timeout: 2 * cfg.Monitor.Timeout}

	return &Repositories{
		Message:    NewTelegramRepo(telegramClient, cfg.Monitor.Timeout),
		Storage:    storageRepo,
		Monitor:    NewMonitorRepo(cfg.Monitor.APIURL, httpClient),
		Logs:       NewLogFileRepo(cfg.Log.FilePath),
		ConfigView: NewConfigViewRepo(cfg, telegramClient.BotName(), version),
	}, nil
}

// Close releases repository resources
func (r *Repositories) Close() error {
	return r.Storage.Close()
}
