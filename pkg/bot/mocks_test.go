package bot

import (
	"context"
	"io"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kunalva/finbot/pkg/api"
)

const (
	allowedID  int64 = 42
	strangerID int64 = 1337
)

// fakeSender records outbound Telegram calls instead of hitting the network.
type fakeSender struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: 99}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// fakeLedger records appends and serves a canned summary.
type fakeLedger struct {
	appends    []api.Transaction
	appendErr  error
	summary    *api.Summary
	summaryErr error
}

func (f *fakeLedger) Append(_ context.Context, tx api.Transaction) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appends = append(f.appends, tx)
	return nil
}

func (f *fakeLedger) MonthlySummary(_ context.Context) (*api.Summary, error) {
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	return f.summary, nil
}

func newTestBot(ledger api.Ledger) (*Bot, *fakeSender) {
	fs := &fakeSender{}
	return &Bot{
		tg:            fs,
		ledger:        ledger,
		states:        NewStateStore(stateTTL),
		allowedUserID: allowedID,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:           func() time.Time { return time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC) },
	}, fs
}

func textMessage(from int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: from},
		Chat:      &tgbotapi.Chat{ID: from},
		Text:      text,
	}
}

func commandMessage(from int64, text string) *tgbotapi.Message {
	m := textMessage(from, text)
	m.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}}
	return m
}

func categoryPress(from int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:   "cb-1",
		From: &tgbotapi.User{ID: from},
		Message: &tgbotapi.Message{
			MessageID: 7,
			Chat:      &tgbotapi.Chat{ID: from},
		},
		Data: data,
	}
}
