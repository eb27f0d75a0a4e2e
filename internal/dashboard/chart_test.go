package dashboard

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petanihandal/auchan-cli/internal/model"
)

func TestBuildSeriesReversesPage(t *testing.T) {
	// The server page is newest-first; the chart reads left to right.
	transactions := []model.Transaction{
		{TransactionDate: "2025-03-03", Type: "EXPENSE", Amount: model.AmountFromString("30000")},
		{TransactionDate: "2025-03-02", Type: "INCOME", Amount: model.AmountFromString("20000")},
		{TransactionDate: "2025-03-01", Type: "INCOME", Amount: model.AmountFromString("10000")},
	}

	points := BuildSeries(transactions)
	require.Len(t, points, 3)
	assert.Equal(t, "01 Mar", points[0].Label)
	assert.Equal(t, "02 Mar", points[1].Label)
	assert.Equal(t, "03 Mar", points[2].Label)
	assert.Equal(t, model.TypeIncome, points[0].Type)
	assert.Equal(t, model.TypeExpense, points[2].Type)
	assert.True(t, points[2].Amount.Equal(decimal.NewFromInt(30000)))
}

func TestBuildSeriesLengthTracksPage(t *testing.T) {
	assert.Empty(t, BuildSeries(nil))

	transactions := make([]model.Transaction, 50)
	for i := range transactions {
		transactions[i] = model.Transaction{TransactionDate: "2025-01-01", Type: "INCOME"}
	}
	assert.Len(t, BuildSeries(transactions), 50)
}

func TestRenderBarsEmpty(t *testing.T) {
	out := RenderBars(nil, 40)
	assert.Contains(t, out, "Belum ada data transaksi")
}

func TestRenderBarsScalesToMax(t *testing.T) {
	points := []ChartPoint{
		{Label: "01 Jan", Type: model.TypeIncome, Amount: decimal.NewFromInt(100)},
		{Label: "02 Jan", Type: model.TypeExpense, Amount: decimal.NewFromInt(50)},
		{Label: "03 Jan", Type: model.TypeExpense, Amount: decimal.NewFromInt(1)},
	}

	out := RenderBars(points, 40)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, 40, strings.Count(lines[0], "█"))
	assert.Equal(t, 20, strings.Count(lines[1], "█"))
	// Tiny amounts still get a visible bar.
	assert.Equal(t, 1, strings.Count(lines[2], "█"))
}

func TestRenderBarsZeroAmounts(t *testing.T) {
	points := []ChartPoint{
		{Label: "01 Jan", Type: model.TypeIncome, Amount: decimal.Zero},
	}
	out := RenderBars(points, 40)
	assert.Equal(t, 1, strings.Count(out, "█"))
}
