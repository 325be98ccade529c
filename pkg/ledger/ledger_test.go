package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kunalva/finbot/pkg/api"
)

func TestBuildRow(t *testing.T) {
	now := time.Date(2024, 5, 2, 9, 5, 42, 0, time.UTC)

	tests := []struct {
		name       string
		tx         api.Transaction
		wantAmount string
		wantNotes  string
	}{
		{
			name: "spend keeps positive sign",
			tx: api.Transaction{
				Amount:   decimal.RequireFromString("250"),
				Category: "Food",
			},
			wantAmount: "250",
		},
		{
			name: "reversal negates the stored amount",
			tx: api.Transaction{
				Amount:   decimal.RequireFromString("120.50"),
				Category: "Home",
				Notes:    api.ReversalNote,
				Reversal: true,
			},
			wantAmount: "-120.5",
			wantNotes:  api.ReversalNote,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			row := buildRow(tc.tx, now)
			if len(row) != 5 {
				t.Fatalf("row length: got %d, want 5", len(row))
			}
			if row[0] != "2024-05-02" {
				t.Errorf("date: got %v, want 2024-05-02", row[0])
			}
			if row[1] != "09:05" {
				t.Errorf("time: got %v, want 09:05", row[1])
			}
			if row[2] != tc.wantAmount {
				t.Errorf("amount: got %v, want %v", row[2], tc.wantAmount)
			}
			if row[3] != tc.tx.Category {
				t.Errorf("category: got %v, want %v", row[3], tc.tx.Category)
			}
			if row[4] != tc.wantNotes {
				t.Errorf("notes: got %v, want %q", row[4], tc.wantNotes)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	header := []any{"Date", "Time", "Amount", "Category", "Notes"}

	tests := []struct {
		name      string
		rows      [][]any
		monthKey  string
		wantCats  map[string]string
		wantTotal string
	}{
		{
			name: "reversal nets against spend",
			rows: [][]any{
				header,
				{"2024-05-01", "10:00", "100", "Food", ""},
				{"2024-05-02", "11:00", "-30", "Food", "REFUND"},
			},
			monthKey:  "2024-05",
			wantCats:  map[string]string{"Food": "70"},
			wantTotal: "70",
		},
		{
			name: "other months are filtered out",
			rows: [][]any{
				header,
				{"2024-04-30", "10:00", "500", "Home", ""},
				{"2024-05-01", "10:00", "200", "Home", ""},
				{"2024-06-01", "10:00", "900", "Home", ""},
			},
			monthKey:  "2024-05",
			wantCats:  map[string]string{"Home": "200"},
			wantTotal: "200",
		},
		{
			name: "blank category buckets into Others",
			rows: [][]any{
				header,
				{"2024-05-03", "10:00", "42", "", ""},
				{"2024-05-04", "10:00", "8"},
			},
			monthKey:  "2024-05",
			wantCats:  map[string]string{"Others": "50"},
			wantTotal: "50",
		},
		{
			name: "unparseable amount contributes zero",
			rows: [][]any{
				header,
				{"2024-05-05", "10:00", "oops", "Food", ""},
				{"2024-05-06", "10:00", "25", "Food", ""},
			},
			monthKey:  "2024-05",
			wantCats:  map[string]string{"Food": "25"},
			wantTotal: "25",
		},
		{
			name:      "no rows",
			rows:      [][]any{header},
			monthKey:  "2024-05",
			wantCats:  map[string]string{},
			wantTotal: "0",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := summarize(tc.rows, tc.monthKey)

			if len(got.PerCategory) != len(tc.wantCats) {
				t.Errorf("category count: got %d, want %d", len(got.PerCategory), len(tc.wantCats))
			}
			for cat, want := range tc.wantCats {
				if !got.PerCategory[cat].Equal(decimal.RequireFromString(want)) {
					t.Errorf("category %s: got %s, want %s", cat, got.PerCategory[cat], want)
				}
			}
			if !got.Total.Equal(decimal.RequireFromString(tc.wantTotal)) {
				t.Errorf("total: got %s, want %s", got.Total, tc.wantTotal)
			}
		})
	}
}

func TestSummarizeOrderInvariant(t *testing.T) {
	forward := [][]any{
		{"Date", "Time", "Amount", "Category", "Notes"},
		{"2024-05-01", "10:00", "100", "Food", ""},
		{"2024-05-02", "11:00", "50.25", "Commute", ""},
		{"2024-05-03", "12:00", "-30", "Food", "REFUND"},
	}
	reversed := [][]any{
		forward[0],
		forward[3],
		forward[2],
		forward[1],
	}

	a := summarize(forward, "2024-05")
	b := summarize(reversed, "2024-05")

	if !a.Total.Equal(b.Total) {
		t.Errorf("total depends on row order: %s vs %s", a.Total, b.Total)
	}
	for cat, amt := range a.PerCategory {
		if !amt.Equal(b.PerCategory[cat]) {
			t.Errorf("category %s depends on row order: %s vs %s", cat, amt, b.PerCategory[cat])
		}
	}

	// Total must equal the sum of the per-category totals.
	var sum decimal.Decimal
	for _, amt := range a.PerCategory {
		sum = sum.Add(amt)
	}
	if !sum.Equal(a.Total) {
		t.Errorf("per-category sum %s != total %s", sum, a.Total)
	}
}
