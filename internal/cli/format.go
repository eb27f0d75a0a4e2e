package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Indonesian short month names, January first.
var shortMonths = []string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

// FormatRupiah renders an amount the way the dashboard does: "Rp 150.000",
// thousands grouped with dots and no decimals.
func FormatRupiah(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	digits := amount.Abs().Round(0).BigInt().String()
	grouped := groupThousands(digits)
	if negative {
		return "-Rp " + grouped
	}
	return "Rp " + grouped
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatChartLabel renders a transaction date as a day/short-month axis
// label, e.g. "02 Jan".
func FormatChartLabel(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%02d %s", t.Day(), shortMonths[t.Month()-1])
}

// FormatDateTime renders a full timestamp for table rows.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%02d %s %d %02d:%02d",
		t.Day(), shortMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// FormatSigned prefixes an amount with +/- and colors it by type.
func FormatSigned(amount decimal.Decimal, income bool) string {
	if income {
		return IncomeStyle.Render("+ " + FormatRupiah(amount))
	}
	return ExpenseStyle.Render("- " + FormatRupiah(amount))
}

// Truncate shortens a string for narrow table columns.
func Truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
