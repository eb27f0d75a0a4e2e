package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/petanihandal/auchan-cli/internal/model"
)

// ListMembers fetches the members of an organization.
func (c *Client) ListMembers(ctx context.Context, orgID string) ([]model.Member, error) {
	var members []model.Member
	path := "/organizations/" + orgID + "/members"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &members); err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// AddMember invites an existing account into the organization by email.
func (c *Client) AddMember(ctx context.Context, orgID, email string, roleID int) error {
	body := map[string]any{
		"email":  email,
		"roleId": roleID,
	}
	path := "/organizations/" + orgID + "/members"
	if err := c.doJSON(ctx, http.MethodPost, path, nil, body, nil); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// UpdateMemberRole changes a member's role.
func (c *Client) UpdateMemberRole(ctx context.Context, orgID, userID string, roleID int) error {
	body := map[string]any{
		"roleId": roleID,
	}
	path := "/organizations/" + orgID + "/members/" + userID
	if err := c.doJSON(ctx, http.MethodPut, path, nil, body, nil); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}
	return nil
}

// RemoveMember removes a member from the organization.
func (c *Client) RemoveMember(ctx context.Context, orgID, userID string) error {
	path := "/organizations/" + orgID + "/members/" + userID
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}
