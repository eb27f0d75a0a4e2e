package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petanihandal/auchan-cli/internal/common"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-token")
}

func TestStatusErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected error
	}{
		{"unauthorized", http.StatusUnauthorized, common.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, common.ErrForbidden},
		{"not found", http.StatusNotFound, common.ErrNotFound},
		{"bad request", http.StatusBadRequest, common.ErrInvalidInput},
		{"unprocessable", http.StatusUnprocessableEntity, common.ErrInvalidInput},
		{"server error", http.StatusInternalServerError, common.ErrServerError},
		{"bad gateway", http.StatusBadGateway, common.ErrServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"success":false,"message":"nope"}`))
			})

			err := client.doJSON(context.Background(), http.MethodGet, "/anything", nil, nil, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	})

	require.NoError(t, client.doJSON(context.Background(), http.MethodGet, "/ping", nil, nil, nil))
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestExecuteUnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":{"id":"tx-1"}}`))
	})

	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, client.doJSON(context.Background(), http.MethodGet, "/transactions/tx-1", nil, nil, &out))
	assert.Equal(t, "tx-1", out.ID)
}

func TestExecuteBareBody(t *testing.T) {
	// Endpoints without the envelope come back as-is.
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"tx-2"}`))
	})

	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, client.doJSON(context.Background(), http.MethodGet, "/transactions/tx-2", nil, nil, &out))
	assert.Equal(t, "tx-2", out.ID)
}
