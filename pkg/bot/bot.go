// Package bot implements the Telegram transport: the long-poll update loop,
// the command/callback router and the two-step entry dialogue.
package bot

import (
	"context"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kunalva/finbot/pkg/api"
)

// stateTTL bounds how long an abandoned entry survives in the state table.
const stateTTL = time.Hour

// sender is the outbound slice of the Telegram API the handlers use.
// *tgbotapi.BotAPI satisfies it.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot routes incoming updates from a single authorized user to the entry
// dialogue and the ledger.
type Bot struct {
	api           *tgbotapi.BotAPI
	tg            sender
	ledger        api.Ledger
	states        *StateStore
	allowedUserID int64
	logger        *slog.Logger
	now           func() time.Time
}

// New creates a Bot on top of an initialized Telegram API client.
func New(botAPI *tgbotapi.BotAPI, ledger api.Ledger, allowedUserID int64, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}

	return &Bot{
		api:           botAPI,
		tg:            botAPI,
		ledger:        ledger,
		states:        NewStateStore(stateTTL),
		allowedUserID: allowedUserID,
		logger:        logger,
		now:           time.Now,
	}
}

// Run registers the command menu and consumes updates via long polling until
// the context is canceled. Updates are handled one at a time to completion;
// no handler failure stops the loop.
func (b *Bot) Run(ctx context.Context) error {
	menu := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "add", Description: "Add an expense"},
		tgbotapi.BotCommand{Command: "remove", Description: "Remove/refund an expense"},
		tgbotapi.BotCommand{Command: "summary", Description: "Monthly summary"},
	)
	if _, err := b.tg.Request(menu); err != nil {
		b.logger.Warn("failed to register command menu", "error", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("bot running", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}
