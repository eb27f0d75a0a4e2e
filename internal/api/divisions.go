package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/petanihandal/auchan-cli/internal/model"
)

// ListDivisions fetches the divisions of an organization.
func (c *Client) ListDivisions(ctx context.Context, orgID string) ([]model.Division, error) {
	var divisions []model.Division
	path := "/organizations/" + orgID + "/divisions"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &divisions); err != nil {
		return nil, fmt.Errorf("failed to list divisions: %w", err)
	}
	return divisions, nil
}

// CreateDivision adds a division to the organization.
func (c *Client) CreateDivision(ctx context.Context, orgID, name, description string) (*model.Division, error) {
	body := map[string]string{
		"name":        name,
		"description": description,
	}
	var division model.Division
	path := "/organizations/" + orgID + "/divisions"
	if err := c.doJSON(ctx, http.MethodPost, path, nil, body, &division); err != nil {
		return nil, fmt.Errorf("failed to create division: %w", err)
	}
	return &division, nil
}

// UpdateDivision renames a division.
func (c *Client) UpdateDivision(ctx context.Context, orgID, divisionID, name, description string) error {
	body := map[string]string{
		"name":        name,
		"description": description,
	}
	path := "/organizations/" + orgID + "/divisions/" + divisionID
	if err := c.doJSON(ctx, http.MethodPut, path, nil, body, nil); err != nil {
		return fmt.Errorf("failed to update division: %w", err)
	}
	return nil
}

// DeleteDivision removes a division.
func (c *Client) DeleteDivision(ctx context.Context, orgID, divisionID string) error {
	path := "/organizations/" + orgID + "/divisions/" + divisionID
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete division: %w", err)
	}
	return nil
}

// ListProjects fetches the projects of a division.
func (c *Client) ListProjects(ctx context.Context, orgID, divisionID string) ([]model.Project, error) {
	var projects []model.Project
	path := "/organizations/" + orgID + "/divisions/" + divisionID + "/projects"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &projects); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// CreateProjectRequest holds the new project's attributes.
type CreateProjectRequest struct {
	Name            string       `json:"name"`
	Description     string       `json:"description,omitempty"`
	BudgetAllocated model.Amount `json:"budgetAllocated"`
}

// CreateProject adds a project to a division.
func (c *Client) CreateProject(ctx context.Context, orgID, divisionID string, req CreateProjectRequest) (*model.Project, error) {
	var project model.Project
	path := "/organizations/" + orgID + "/divisions/" + divisionID + "/projects"
	if err := c.doJSON(ctx, http.MethodPost, path, nil, req, &project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, orgID, divisionID, projectID string) error {
	path := "/organizations/" + orgID + "/divisions/" + divisionID + "/projects/" + projectID
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
