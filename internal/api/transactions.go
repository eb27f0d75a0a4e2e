package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/petanihandal/auchan-cli/internal/model"
)

// ListTransactionsOptions filter and page the transaction list.
type ListTransactionsOptions struct {
	OrgID      string
	DivisionID string
	ProjectID  string
	Search     string
	Page       int
	Limit      int
}

func (o ListTransactionsOptions) query() url.Values {
	q := url.Values{}
	if o.OrgID != "" {
		q.Set("orgId", o.OrgID)
	}
	if o.DivisionID != "" {
		q.Set("divisionId", o.DivisionID)
	}
	if o.ProjectID != "" {
		q.Set("projectId", o.ProjectID)
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	page := o.Page
	if page <= 0 {
		page = 1
	}
	limit := o.Limit
	if limit <= 0 {
		limit = 20
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

// ListTransactions fetches one page of transactions. The endpoint usually
// wraps the list as {data:{data:[...],meta:{...}}} but has been observed to
// return {data:[...]} as well; both shapes are accepted.
func (c *Client) ListTransactions(ctx context.Context, opts ListTransactionsOptions) ([]model.Transaction, PageMeta, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/transactions", opts.query(), nil)
	if err != nil {
		return nil, PageMeta{}, err
	}

	raw, err := c.execute(req)
	if err != nil {
		return nil, PageMeta{}, fmt.Errorf("failed to list transactions: %w", err)
	}

	return decodeTransactionPage(raw)
}

// decodeTransactionPage accepts either the paged wrapper or a bare array.
func decodeTransactionPage(raw json.RawMessage) ([]model.Transaction, PageMeta, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []model.Transaction
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, PageMeta{}, fmt.Errorf("failed to decode transaction list: %w", err)
		}
		return list, PageMeta{Total: len(list)}, nil
	}

	var page struct {
		Data []model.Transaction `json:"data"`
		Meta pageMeta            `json:"meta"`
	}
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, PageMeta{}, fmt.Errorf("failed to decode transaction page: %w", err)
	}
	meta := PageMeta{Total: page.Meta.Total, Page: page.Meta.Page, Limit: page.Meta.Limit}
	if meta.Total == 0 {
		meta.Total = len(page.Data)
	}
	return page.Data, meta, nil
}

// GetTransaction fetches a single transaction with its relations.
func (c *Client) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	var tx model.Transaction
	if err := c.doJSON(ctx, http.MethodGet, "/transactions/"+id, nil, nil, &tx); err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", id, err)
	}
	return &tx, nil
}

// CreateTransactionRequest is the manual-entry form payload. The backend
// accepts it as multipart form data with an optional file attachment.
type CreateTransactionRequest struct {
	OrgID           string
	ProjectID       string
	TransactionDate string
	Amount          model.Amount
	Type            string
	CategoryID      string
	Description     string
	Attachment      io.Reader
	AttachmentName  string
}

// CreateTransaction submits a manual transaction.
func (c *Client) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*model.Transaction, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"orgId":           req.OrgID,
		"projectId":       req.ProjectID,
		"transactionDate": req.TransactionDate,
		"amount":          req.Amount.String(),
		"type":            req.Type,
	}
	if req.CategoryID != "" {
		fields["categoryId"] = req.CategoryID
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	if req.Attachment != nil {
		part, err := writer.CreateFormFile("attachments", req.AttachmentName)
		if err != nil {
			return nil, fmt.Errorf("failed to create attachment part: %w", err)
		}
		if _, err := io.Copy(part, req.Attachment); err != nil {
			return nil, fmt.Errorf("failed to copy attachment: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/transactions", nil, &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	raw, err := c.execute(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	var tx model.Transaction
	if err := json.Unmarshal(raw, &tx); err != nil {
		return nil, fmt.Errorf("failed to decode created transaction: %w", err)
	}
	return &tx, nil
}

// UpdateTransaction changes the only two admin-editable fields.
func (c *Client) UpdateTransaction(ctx context.Context, id, txType, description string) error {
	body := map[string]string{
		"type":        txType,
		"description": description,
	}
	if err := c.doJSON(ctx, http.MethodPut, "/transactions/"+id, nil, body, nil); err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", id, err)
	}
	return nil
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/transactions/"+id, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}
	return nil
}

// Statistics fetches the organization-wide aggregates used by the dashboard.
func (c *Client) Statistics(ctx context.Context) (*model.Statistics, error) {
	var stats model.Statistics
	if err := c.doJSON(ctx, http.MethodGet, "/transactions/statistics", nil, nil, &stats); err != nil {
		return nil, fmt.Errorf("failed to fetch statistics: %w", err)
	}
	return &stats, nil
}
