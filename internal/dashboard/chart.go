// Package dashboard derives display aggregates from the statistics endpoint
// and a capped page of recent transactions.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/petanihandal/auchan-cli/internal/cli"
	"github.com/petanihandal/auchan-cli/internal/model"
)

// ChartPoint is one bar of the cash-flow chart.
type ChartPoint struct {
	Label       string
	Description string
	Type        string
	Amount      decimal.Decimal
}

// BuildSeries maps a recent-transactions page to the chart series. The server
// returns the page newest-first; the chart wants chronological order, so the
// page is reversed before mapping. The series length equals the requested
// page size, not a fixed window.
func BuildSeries(transactions []model.Transaction) []ChartPoint {
	points := make([]ChartPoint, 0, len(transactions))
	for i := len(transactions) - 1; i >= 0; i-- {
		tx := transactions[i]
		points = append(points, ChartPoint{
			Label:       cli.FormatChartLabel(tx.Date()),
			Description: tx.Description,
			Type:        tx.NormalizedType(),
			Amount:      tx.Amount.Decimal,
		})
	}
	return points
}

// RenderBars draws the series as horizontal bars scaled to the given width,
// income bars colored positive and expense bars negative.
func RenderBars(points []ChartPoint, width int) string {
	if len(points) == 0 {
		return cli.SubtleStyle.Render("Belum ada data transaksi")
	}
	if width < 10 {
		width = 10
	}

	max := decimal.Zero
	for _, p := range points {
		if abs := p.Amount.Abs(); abs.GreaterThan(max) {
			max = abs
		}
	}

	var b strings.Builder
	for _, p := range points {
		length := 1
		if max.IsPositive() {
			scaled := p.Amount.Abs().Div(max).Mul(decimal.NewFromInt(int64(width)))
			length = int(scaled.IntPart())
			if length < 1 {
				length = 1
			}
		}

		bar := strings.Repeat("█", length)
		style := cli.ExpenseStyle
		if p.Type == model.TypeIncome {
			style = cli.IncomeStyle
		}

		fmt.Fprintf(&b, "%-7s %s %s\n",
			p.Label,
			style.Render(bar),
			cli.SubtleStyle.Render(cli.FormatRupiah(p.Amount)))
	}
	return b.String()
}
