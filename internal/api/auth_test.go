package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginResolvesRoleFromMembership(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "budi@example.com", body["email"])

		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {
				"token": "jwt-token",
				"user": {
					"id": "user-1",
					"name": "Budi",
					"email": "budi@example.com",
					"role": {"id": 4, "name": "Member"},
					"memberships": [
						{"orgId": "org-1", "role": {"id": 2, "name": "Treasurer"}}
					]
				}
			}
		}`))
	})

	result, err := client.Login(context.Background(), "budi@example.com", "secret")
	require.NoError(t, err)

	// The membership role and org win over the top-level ones.
	assert.Equal(t, "jwt-token", result.Token)
	assert.Equal(t, "org-1", result.OrgID)
	assert.Equal(t, "Treasurer", result.Role)

	sess := result.Session()
	assert.Equal(t, "TREASURER", sess.Role)
	assert.True(t, sess.Valid())
}

func TestLoginFallsBackToTopLevelRole(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {
				"token": "jwt-token",
				"user": {
					"id": "user-1",
					"orgId": "org-9",
					"role": {"id": 1, "name": "Admin"},
					"memberships": []
				}
			}
		}`))
	})

	result, err := client.Login(context.Background(), "budi@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Admin", result.Role)
	assert.Equal(t, "org-9", result.OrgID)
}

func TestLoginNoRoleAnywhere(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"token": "jwt-token", "user": {"id": "user-1"}}
		}`))
	})

	result, err := client.Login(context.Background(), "budi@example.com", "secret")
	require.NoError(t, err)
	assert.Empty(t, result.Role)
	assert.Empty(t, result.Session().Role)
}
