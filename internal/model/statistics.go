package model

import "github.com/shopspring/decimal"

// Statistics is the aggregate returned by GET /transactions/statistics.
// The dashboard derives its balance from these server totals, never from the
// capped recent-transactions page.
type Statistics struct {
	TotalAmountIncome  Amount `json:"totalAmountIncome"`
	TotalAmountExpense Amount `json:"totalAmountExpense"`
	TotalAnomaly       int    `json:"totalAnomaly"`
	TotalTransaction   int    `json:"totalTransaction"`
}

// NetBalance is total income minus total expense.
func (s Statistics) NetBalance() decimal.Decimal {
	return s.TotalAmountIncome.Sub(s.TotalAmountExpense.Decimal)
}

// HasAnomalies reports whether the anomaly badge should be shown.
func (s Statistics) HasAnomalies() bool {
	return s.TotalAnomaly > 0
}
