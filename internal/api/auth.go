package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/petanihandal/auchan-cli/internal/model"
)

// LoginResult is the resolved outcome of a login or registration call.
type LoginResult struct {
	Token    string
	UserID   string
	UserName string
	Email    string
	OrgID    string
	Role     string
}

// Session converts the result into a persistable session.
func (r *LoginResult) Session() *model.Session {
	return &model.Session{
		Token:  r.Token,
		UserID: r.UserID,
		OrgID:  r.OrgID,
		Role:   model.NormalizeRole(r.Role),
	}
}

// authUser mirrors the nested user payload of the auth endpoints. The role can
// live on the first membership or at the top level depending on the endpoint.
type authUser struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	OrgID       string       `json:"orgId"`
	Role        *roleRef     `json:"role"`
	Memberships []membership `json:"memberships"`
}

type membership struct {
	OrgID string   `json:"orgId"`
	Role  *roleRef `json:"role"`
}

type roleRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// resolveRole applies the defined fallback order: first membership's role
// name, else the top-level role name, else empty.
func (u *authUser) resolveRole() string {
	if len(u.Memberships) > 0 {
		if r := u.Memberships[0].Role; r != nil && r.Name != "" {
			return r.Name
		}
	}
	if u.Role != nil {
		return u.Role.Name
	}
	return ""
}

// resolveOrgID prefers the first membership's organization.
func (u *authUser) resolveOrgID() string {
	if len(u.Memberships) > 0 && u.Memberships[0].OrgID != "" {
		return u.Memberships[0].OrgID
	}
	return u.OrgID
}

type authData struct {
	User  authUser `json:"user"`
	Token string   `json:"token"`
}

func (c *Client) authResult(data authData) *LoginResult {
	return &LoginResult{
		Token:    data.Token,
		UserID:   data.User.ID,
		UserName: data.User.Name,
		Email:    data.User.Email,
		OrgID:    data.User.resolveOrgID(),
		Role:     data.User.resolveRole(),
	}
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var data authData
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, body, &data); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return c.authResult(data), nil
}

// RegisterRequest creates a new account. Either a new organization
// (OrgName/OrgDescription) or an invite code (OrgCode) must be supplied.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	OrgName  string `json:"orgName,omitempty"`
	OrgDesc  string `json:"orgDesc,omitempty"`
	OrgCode  string `json:"orgCode,omitempty"`
}

// Register creates an account and, when the backend issues a token right
// away, returns a ready-to-persist result.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	var data authData
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", nil, req, &data); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return c.authResult(data), nil
}
