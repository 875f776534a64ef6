package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"mc-control-bot/internal/auth"
	"mc-control-bot/internal/config"
	"mc-control-bot/internal/rcon"
	"mc-control-bot/internal/server"
	"mc-control-bot/internal/session"
	"mc-control-bot/internal/status"
	"mc-control-bot/internal/sweeper"
	"mc-control-bot/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	authSvc := auth.New(cfg.AuthorizedUsers, cfg.SuperUser)
	registry := server.NewRegistry(cfg.Servers())

	pending := session.NewPendingStore()
	pickers := session.NewPickerStore()
	selection := session.NewSelectionStore()
	cooldowns := session.NewCooldownLedger()

	bot, err := telegram.New(
		cfg.TelegramBotToken,
		authSvc,
		registry,
		rcon.NewDialer(cfg.BackendTimeout),
		status.NewHTTPClient(cfg.BackendTimeout),
		pending,
		pickers,
		selection,
		cooldowns,
		cfg.BackendTimeout,
		cfg.SleepCooldown,
	)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	if err := bot.SetupCommands(); err != nil {
		log.Printf("failed to register bot commands: %v", err)
	}

	sw := sweeper.New(
		cfg.SweepInterval,
		pending,
		pickers,
		cooldowns,
		bot,
		cfg.PendingTimeout,
		cfg.CooldownRetention,
	)
	if err := sw.Start(); err != nil {
		log.Fatalf("failed to start sweeper: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot.Start(ctx)
	sw.Stop()
}
