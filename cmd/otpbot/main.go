package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/otpwatch/ivasms-admin-bot/internal/api"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz/domain"
	"github.com/otpwatch/ivasms-admin-bot/internal/biz/usecase"
	"github.com/otpwatch/ivasms-admin-bot/internal/conf"
	"github.com/otpwatch/ivasms-admin-bot/internal/data"
	"github.com/otpwatch/ivasms-admin-bot/internal/infra/telegram"
	"github.com/otpwatch/ivasms-admin-bot/internal/server"
	"github.com/otpwatch/ivasms-admin-bot/internal/service"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := conf.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	startTime := time.Now()

	// Initialize clients
	telegramClient, err := telegram.NewClient(cfg.Telegram.Token, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to create Telegram client: %v", err)
	}

	// Initialize repository layer
	repos, err := data.NewRepositories(cfg, telegramClient, version)
	if err != nil {
		log.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	fmt.Printf("[Bot] OTP DB: %s\n", cfg.Storage.DBPath)
	fmt.Printf("[Bot] Log file: %s\n", cfg.Log.FilePath)
	fmt.Printf("[Bot] Admins: %d\n", len(cfg.Telegram.AdminChatIDs))

	// Initialize usecase layer
	state := domain.NewBotState(startTime)
	ucs := biz.NewUsecases(
		state,
		cfg.AdminSet(),
		repos.Message,
		repos.Storage,
		repos.Monitor,
		repos.Logs,
		usecase.DefaultNotifyConfig(),
		cfg.Monitor.Timeout,
	)

	// Initialize service layer
	cmdSvc := service.NewCommandService(
		cfg.AdminSet(),
		ucs.Status,
		ucs.OTP,
		ucs.Monitor,
		ucs.Logs,
		ucs.Notify,
		repos.ConfigView,
		cfg.ToReplyTexts(),
	)

	// Initialize HTTP API server for the monitor and otp-notify
	apiServer := api.NewServer(ucs.Notify, ucs.Monitor, ucs.Status, cfg.API.Port)
	go func() {
		if err := apiServer.Start(); err != nil {
			fmt.Printf("[Bot] API server error: %v\n", err)
		}
	}()

	// Initialize server
	srv := server.NewTelegramServer(telegramClient, repos.Message, cmdSvc, ucs.Notify, cfg.Messages.Started)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Println("\nShutting down...")
		srv.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		apiServer.Stop(shutdownCtx)
	}()

	fmt.Printf("Starting iVASMS admin bot %s...\n", version)
	if err := srv.Start(ctx); err != nil {
		repos.Close()
		log.Fatalf("Server error: %v", err)
	}
}
