package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"homework_bot/internal/bot"
	"homework_bot/internal/config"
	"homework_bot/internal/homework"
	"homework_bot/internal/logging"
	"homework_bot/internal/poller"
	"homework_bot/internal/practicum"
	"homework_bot/internal/storage"
)

const (
	startupNotice = "Отсутствуют обязательные переменные окружения"
	sendTimeout   = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log, closer := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer func() { _ = closer.Close() }()

	sender := bot.New(cfg.NotifyToken, sendTimeout, log)

	if err := cfg.Validate(); err != nil {
		logging.Critical(log, "missing configuration", "error", err)
		if cfg.CanNotify() {
			ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
			if err := sender.Send(ctx, cfg.NotifyDestination, startupNotice); err != nil {
				log.Error("send startup notice", "error", err)
			}
			cancel()
		}
		_ = closer.Close()
		os.Exit(1)
	}

	if err := bot.ValidateDestination(cfg.NotifyDestination); err != nil {
		log.Error("notification destination will be rejected on every send", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := practicum.New(cfg.APIEndpoint, cfg.APIToken, http.DefaultClient)
	client.SetTimeout(cfg.FetchTimeout)

	p := poller.New(client, homework.NewCatalog(), sender, cfg.NotifyDestination, log)
	p.SetInterval(cfg.RetryInterval)

	if cfg.JournalPath != "" {
		store, err := openJournal(ctx, cfg.JournalPath)
		if err != nil {
			log.Error("open journal, continuing without it", "path", cfg.JournalPath, "error", err)
		} else {
			defer func() { _ = store.Close() }()
			p.SetJournal(store)
		}
	}

	log.Info("starting bot", "endpoint", cfg.APIEndpoint, "interval", cfg.RetryInterval)

	p.Run(ctx)

	log.Info("bot stopped")
}

func openJournal(ctx context.Context, path string) (storage.Storage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, err
		}
	}
	store, err := storage.NewSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	return store, nil
}
