package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"google.golang.org/api/sheets/v4"

	"github.com/kunalva/finbot/pkg/bot"
	"github.com/kunalva/finbot/pkg/config"
	"github.com/kunalva/finbot/pkg/ledger"
	"github.com/kunalva/finbot/pkg/logging"
	"github.com/kunalva/finbot/pkg/token"
)

func main() {
	logger := logging.Setup(logging.DefaultConfig())

	if err := run(logger); err != nil {
		logger.Error("finbot exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// Cancel the update loop on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	tokens, err := token.NewCache(logger.With("component", "token_cache"), sheets.SpreadsheetsScope)
	if err != nil {
		return fmt.Errorf("creating token cache: %w", err)
	}

	ledgerClient, err := ledger.New(ctx, tokens, ledger.Config{
		SpreadsheetID: cfg.GSheetsID,
		SheetName:     cfg.GSheetsName,
	}, logger.With("component", "ledger"))
	if err != nil {
		return fmt.Errorf("creating ledger client: %w", err)
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("initializing telegram client: %w", err)
	}

	b := bot.New(botAPI, ledgerClient, cfg.AllowedUserID, logger.With("component", "bot"))
	return b.Run(ctx)
}
