// Package charts renders the monthly summary as a category bar chart.
package charts

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/kunalva/finbot/pkg/api"
)

// MonthlyBreakdown renders a PNG bar chart of per-category net spend for one
// month. Categories whose net amount is not positive are left out (a bar
// chart of refund-only categories reads as noise). Returns nil bytes when
// there is nothing to draw.
func MonthlyBreakdown(title string, summary *api.Summary) ([]byte, error) {
	bars := make([]chart.Value, 0, len(summary.PerCategory))
	for category, amount := range summary.PerCategory {
		if amount.Sign() <= 0 {
			continue
		}
		bars = append(bars, chart.Value{
			Label: category,
			Value: amount.InexactFloat64(),
		})
	}
	if len(bars) == 0 {
		return nil, nil
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Value > bars[j].Value })

	graph := chart.BarChart{
		Title:    title,
		Width:    900,
		Height:   450,
		BarWidth: 56,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering summary chart: %w", err)
	}
	return buf.Bytes(), nil
}
