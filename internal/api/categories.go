package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/petanihandal/auchan-cli/internal/model"
)

// Categories fetches the raw category list for an organization. Callers that
// feed a selection form should pass the result through
// model.DedupeCategories.
func (c *Client) Categories(ctx context.Context, orgID string) ([]model.Category, error) {
	q := url.Values{}
	if orgID != "" {
		q.Set("orgId", orgID)
	}

	var categories []model.Category
	if err := c.doJSON(ctx, http.MethodGet, "/categories", q, nil, &categories); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
