package api

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petanihandal/auchan-cli/internal/model"
)

func TestListTransactionsPagedWrapper(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "org-1", r.URL.Query().Get("orgId"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {
				"data": [
					{"id": "tx-1", "type": "INCOME", "amount": "50000"},
					{"id": "tx-2", "type": "expense", "amount": 25000}
				],
				"meta": {"total": 42, "page": 1, "limit": 10}
			}
		}`))
	})

	transactions, meta, err := client.ListTransactions(context.Background(), ListTransactionsOptions{
		OrgID: "org-1",
		Page:  1,
		Limit: 10,
	})
	require.NoError(t, err)

	require.Len(t, transactions, 2)
	assert.Equal(t, 42, meta.Total)
	assert.True(t, transactions[0].IsIncome())
	assert.False(t, transactions[1].IsIncome())
	assert.True(t, transactions[1].Amount.Equal(decimal.NewFromInt(25000)))
}

func TestListTransactionsBareArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "data": [{"id": "tx-1"}]}`))
	})

	transactions, meta, err := client.ListTransactions(context.Background(), ListTransactionsOptions{})
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, 1, meta.Total)
}

func TestListTransactionsDefaultsPaging(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"success": true, "data": []}`))
	})

	_, _, err := client.ListTransactions(context.Background(), ListTransactionsOptions{})
	require.NoError(t, err)
}

func TestCreateTransactionMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "org-1", r.FormValue("orgId"))
		assert.Equal(t, "proj-1", r.FormValue("projectId"))
		assert.Equal(t, "150000", r.FormValue("amount"))
		assert.Equal(t, "EXPENSE", r.FormValue("type"))
		assert.Equal(t, "2025-03-10", r.FormValue("transactionDate"))

		file, header, err := r.FormFile("attachments")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "receipt.jpg", header.Filename)

		var buf bytes.Buffer
		_, _ = buf.ReadFrom(file)
		assert.Equal(t, "fake image bytes", buf.String())

		_, _ = w.Write([]byte(`{"success": true, "data": {"id": "tx-9", "type": "EXPENSE"}}`))
	})

	tx, err := client.CreateTransaction(context.Background(), CreateTransactionRequest{
		OrgID:           "org-1",
		ProjectID:       "proj-1",
		TransactionDate: "2025-03-10",
		Amount:          model.AmountFromString("150000"),
		Type:            "EXPENSE",
		Attachment:      strings.NewReader("fake image bytes"),
		AttachmentName:  "receipt.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "tx-9", tx.ID)
}

func TestCreateTransactionOmitsOptionalFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, hasCategory := r.MultipartForm.Value["categoryId"]
		_, hasDescription := r.MultipartForm.Value["description"]
		assert.False(t, hasCategory)
		assert.False(t, hasDescription)
		_, _ = w.Write([]byte(`{"success": true, "data": {"id": "tx-10"}}`))
	})

	_, err := client.CreateTransaction(context.Background(), CreateTransactionRequest{
		OrgID:           "org-1",
		ProjectID:       "proj-1",
		TransactionDate: "2025-03-10",
		Amount:          model.AmountFromString("1000"),
		Type:            "INCOME",
	})
	require.NoError(t, err)
}

func TestStatistics(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions/statistics", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {
				"totalAmountIncome": "900000",
				"totalAmountExpense": "400000",
				"totalAnomaly": 1,
				"totalTransaction": 12
			}
		}`))
	})

	stats, err := client.Statistics(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.NetBalance().Equal(decimal.NewFromInt(500000)))
	assert.True(t, stats.HasAnomalies())
}
