package bot

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/kunalva/finbot/pkg/api"
	"github.com/kunalva/finbot/pkg/charts"
	"github.com/kunalva/finbot/pkg/extract"
)

const welcomeText = "👋 Welcome to Finance Tracker!\n\n" +
	"1. Forward PhonePe SMS\n" +
	"2. Select category\n" +
	"3. Done!\n\n" +
	"Commands:\n" +
	"/add - Add expense\n" +
	"/remove - Remove/Refund expense\n" +
	"/summary - View monthly summary"

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	if msg.From.ID != b.allowedUserID {
		// Only /start gets a rejection; everything else is dropped.
		if msg.IsCommand() && msg.Command() == "start" {
			b.send(tgbotapi.NewMessage(msg.Chat.ID, "❌ Unauthorized"))
		}
		b.logger.Warn("message from unauthorized sender", "user_id", msg.From.ID)
		return
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.send(tgbotapi.NewMessage(msg.Chat.ID, welcomeText))
		case "add":
			b.states.Set(msg.From.ID, &Entry{Await: AwaitAmount})
			b.send(tgbotapi.NewMessage(msg.Chat.ID, "💰 Enter amount:"))
		case "remove":
			b.states.Set(msg.From.ID, &Entry{Await: AwaitAmount, Reversal: true})
			b.send(tgbotapi.NewMessage(msg.Chat.ID, "💸 Enter amount to remove:"))
		case "summary":
			b.handleSummary(ctx, msg)
		}
		return
	}

	if msg.Text != "" {
		b.handleText(msg)
	}
}

// handleText advances the entry dialogue: a typed amount while one is awaited,
// otherwise a scan for an amount inside a forwarded payment notification.
func (b *Bot) handleText(msg *tgbotapi.Message) {
	userID := msg.From.ID

	if entry, ok := b.states.Get(userID); ok && entry.Await == AwaitAmount {
		amount, err := decimal.NewFromString(strings.TrimSpace(msg.Text))
		if err != nil || amount.Sign() <= 0 {
			b.send(tgbotapi.NewMessage(msg.Chat.ID, "❌ Invalid amount"))
			return
		}

		b.states.Set(userID, &Entry{Await: AwaitCategory, Amount: amount, Reversal: entry.Reversal})

		emoji := "💰"
		if entry.Reversal {
			emoji = "💸"
		}
		b.promptCategory(msg.Chat.ID, fmt.Sprintf("%s ₹%s\nSelect category:", emoji, amount))
		return
	}

	if amount, ok := extract.ParseAmount(msg.Text); ok {
		b.states.Set(userID, &Entry{Await: AwaitCategory, Amount: amount})
		b.promptCategory(msg.Chat.ID, fmt.Sprintf("✅ Detected: ₹%s\nSelect category:", amount))
	}
}

func (b *Bot) promptCategory(chatID int64, text string) {
	prompt := tgbotapi.NewMessage(chatID, text)
	prompt.ReplyMarkup = categoryKeyboard()
	b.send(prompt)
}

// handleCallback completes an entry when a category button is pressed. A
// press with no held amount, a malformed payload or a stale index is a
// silent no-op.
func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.From == nil || cb.From.ID != b.allowedUserID {
		return
	}
	if !strings.HasPrefix(cb.Data, categoryPayloadPrefix) || cb.Message == nil {
		return
	}

	index, err := strconv.Atoi(strings.TrimPrefix(cb.Data, categoryPayloadPrefix))
	if err != nil {
		return
	}
	category, ok := api.CategoryAt(index)
	if !ok {
		// Keyboard from a build with a longer category list.
		b.logger.Warn("category index out of range", "index", index)
		return
	}

	userID := cb.From.ID
	entry, ok := b.states.Get(userID)
	if !ok || entry.Await != AwaitCategory || entry.Amount.Sign() <= 0 {
		return
	}

	tx := api.Transaction{
		Amount:   entry.Amount,
		Category: category,
		Reversal: entry.Reversal,
	}
	if entry.Reversal {
		tx.Notes = api.ReversalNote
	}

	if err := b.ledger.Append(ctx, tx); err != nil {
		b.logger.Error("appending transaction", "error", err)
		// State is kept so another tap can retry with the same amount.
		b.respond(cb.ID, "❌ Error")
		return
	}

	b.respond(cb.ID, "✅ Saved!")

	action, emoji := "Added", "💰"
	if entry.Reversal {
		action, emoji = "Removed", "💸"
	}
	b.send(tgbotapi.NewEditMessageText(
		cb.Message.Chat.ID,
		cb.Message.MessageID,
		fmt.Sprintf("✅ %s!\n%s ₹%s\n📂 %s", action, emoji, entry.Amount, category),
	))

	b.states.Clear(userID)
}

func (b *Bot) handleSummary(ctx context.Context, msg *tgbotapi.Message) {
	summary, err := b.ledger.MonthlySummary(ctx)
	if err != nil {
		b.logger.Error("computing monthly summary", "error", err)
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "❌ Error"))
		return
	}

	monthName := b.now().Format("January 2006")
	b.send(tgbotapi.NewMessage(msg.Chat.ID, summaryText(monthName, summary)))

	// Chart failure degrades to text-only.
	png, err := charts.MonthlyBreakdown(monthName, summary)
	if err != nil {
		b.logger.Warn("rendering summary chart", "error", err)
		return
	}
	if png != nil {
		b.send(tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: "summary.png", Bytes: png}))
	}
}

// summaryText formats the per-category breakdown, largest first.
func summaryText(monthName string, summary *api.Summary) string {
	type line struct {
		category string
		amount   decimal.Decimal
	}

	lines := make([]line, 0, len(summary.PerCategory))
	for category, amount := range summary.PerCategory {
		lines = append(lines, line{category, amount})
	}
	sort.Slice(lines, func(i, j int) bool {
		if !lines[i].amount.Equal(lines[j].amount) {
			return lines[i].amount.GreaterThan(lines[j].amount)
		}
		return lines[i].category < lines[j].category
	})

	var sb strings.Builder
	sb.WriteString("📊 " + monthName + "\n\n")
	for _, l := range lines {
		fmt.Fprintf(&sb, "%s: ₹%s\n", l.category, l.amount.StringFixed(2))
	}
	fmt.Fprintf(&sb, "\n💵 Total: ₹%s", summary.Total.StringFixed(2))
	return sb.String()
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.tg.Send(c); err != nil {
		b.logger.Error("sending message", "error", err)
	}
}

// respond acknowledges a callback with an ephemeral toast.
func (b *Bot) respond(callbackID, text string) {
	if _, err := b.tg.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.logger.Error("answering callback", "error", err)
	}
}
