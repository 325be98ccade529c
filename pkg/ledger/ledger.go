// Package ledger implements the Google Sheets backed transaction ledger.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/kunalva/finbot/pkg/api"
)

// Client appends transaction rows to a spreadsheet and aggregates them into
// monthly summaries. Row layout: date, time, amount, category, notes.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
	logger        *slog.Logger
	now           func() time.Time
}

// Config holds configuration for the ledger client.
type Config struct {
	// SpreadsheetID is the ID of the spreadsheet holding the ledger.
	SpreadsheetID string
	// SheetName is the name of the sheet/tab within the spreadsheet.
	SheetName string
}

// New creates a ledger client authenticated through the given token source.
func New(ctx context.Context, ts oauth2.TokenSource, cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	svc, err := sheets.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		logger:        logger,
		now:           time.Now,
	}, nil
}

// Append writes one transaction row, stamped with the current local date and
// minute-precision time. The stored amount is negated for reversals; the sign
// is the sole encoding of direction. Single attempt, no retry.
func (c *Client) Append(ctx context.Context, tx api.Transaction) error {
	row := buildRow(tx, c.now())
	writeRange := fmt.Sprintf("%s!A:E", c.sheetName)

	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, writeRange, &sheets.ValueRange{
		Values: [][]any{row},
	}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending row to sheet: %w", err)
	}

	c.logger.Info("transaction appended",
		"amount", row[2],
		"category", tx.Category,
		"reversal", tx.Reversal,
	)
	return nil
}

// MonthlySummary fetches all ledger rows and aggregates those from the
// current calendar month by category.
func (c *Client) MonthlySummary(ctx context.Context) (*api.Summary, error) {
	readRange := fmt.Sprintf("%s!A:E", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading ledger rows: %w", err)
	}

	summary := summarize(resp.Values, c.now().Format("2006-01"))
	c.logger.Debug("monthly summary computed",
		"categories", len(summary.PerCategory),
		"total", summary.Total,
	)
	return summary, nil
}

// buildRow converts a transaction into the 5-column sheet row.
func buildRow(tx api.Transaction, now time.Time) []any {
	amount := tx.Amount
	if tx.Reversal {
		amount = amount.Neg()
	}
	return []any{
		now.Format("2006-01-02"),
		now.Format("15:04"),
		amount.String(),
		tx.Category,
		tx.Notes,
	}
}

// summarize aggregates raw sheet rows whose date cell carries the given
// YYYY-MM prefix. The first row is a header and is skipped. A blank category
// buckets into Others; an unparseable amount contributes zero.
func summarize(rows [][]any, monthKey string) *api.Summary {
	summary := &api.Summary{
		PerCategory: make(map[string]decimal.Decimal),
	}

	for i, row := range rows {
		if i == 0 {
			continue
		}
		if cell(row, 0) == "" || !strings.HasPrefix(cell(row, 0), monthKey) {
			continue
		}

		category := cell(row, 3)
		if category == "" {
			category = api.OthersCategory
		}

		amount, err := decimal.NewFromString(cell(row, 2))
		if err != nil {
			amount = decimal.Zero
		}

		summary.PerCategory[category] = summary.PerCategory[category].Add(amount)
		summary.Total = summary.Total.Add(amount)
	}

	return summary
}

// cell returns the trimmed string value at the given column, or "" when the
// row is too short.
func cell(row []any, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[col]))
}
