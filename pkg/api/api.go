// Package api defines the core types and interfaces for finbot.
package api

import (
	"context"

	"github.com/shopspring/decimal"
)

// Transaction holds one ledger entry before it is written.
// Amount is always positive; Reversal controls the sign of the stored row.
type Transaction struct {
	Amount   decimal.Decimal
	Category string
	// Notes carries free text, e.g. the reversal marker.
	Notes    string
	Reversal bool
}

// Summary aggregates one calendar month of ledger rows by category.
// Total includes reversals as negative contributions, so it reflects net spend.
type Summary struct {
	PerCategory map[string]decimal.Decimal
	Total       decimal.Decimal
}

// Ledger appends transactions to the remote ledger and computes summaries
// over its existing rows.
type Ledger interface {
	Append(ctx context.Context, tx Transaction) error
	MonthlySummary(ctx context.Context) (*Summary, error)
}

// Categories is the fixed ordered set of spending categories. Button payloads
// carry an index into this list, so the order is part of the wire contract.
var Categories = []string{
	"Home",
	"Commute",
	"Food",
	"Subscriptions",
	"Entertainment",
	"Loans/Emi",
	"Wellness",
	"Investments",
	"Insurances",
	"Miscellaneous",
}

// CategoryAt resolves a keyboard index to a category label.
func CategoryAt(index int) (string, bool) {
	if index < 0 || index >= len(Categories) {
		return "", false
	}
	return Categories[index], true
}

// OthersCategory buckets ledger rows whose category cell is blank.
const OthersCategory = "Others"

// ReversalNote marks a row that negates a previous spend.
const ReversalNote = "REFUND"
