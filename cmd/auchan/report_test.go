package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petanihandal/auchan-cli/internal/common"
	"github.com/petanihandal/auchan-cli/internal/model"
)

// setupReportEnv points the state database at a temp file and the AI gateway
// at a test server, then seeds an admin session and one tracked job.
func setupReportEnv(t *testing.T, handler http.Handler) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	viper.Set("database.path", filepath.Join(t.TempDir(), "state.db"))
	viper.Set("ai.base_url", srv.URL)
	t.Cleanup(func() {
		viper.Set("database.path", "")
		viper.Set("ai.base_url", "")
	})

	ctx := context.Background()
	store, err := newStorage(ctx)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.SaveSession(ctx, &model.Session{
		Token:  "token",
		UserID: "user-1",
		OrgID:  "org-1",
		Role:   "ADMIN",
	}))
	require.NoError(t, store.SaveTrackedReport(ctx, &model.TrackedReport{
		JobID: "job-1",
		Month: 1,
		Year:  2025,
	}))
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	prev := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = prev }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestReportGenerateNoTransactionsKeepsTrackedJob(t *testing.T) {
	setupReportEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/build-report", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))

	cmd := reportGenerateCmd()
	cmd.SetArgs([]string{"--month", "2", "--year", "2025"})

	var execErr error
	out := captureStdout(t, func() {
		execErr = cmd.ExecuteContext(context.Background())
	})

	require.Error(t, execErr)
	assert.ErrorIs(t, execErr, common.ErrNoTransactions)

	// Requesting a different period than the tracked job warns up front,
	// even when the service then rejects the request.
	assert.Contains(t, out, "job-1")
	assert.Contains(t, out, "01/2025")

	ctx := context.Background()
	store, err := newStorage(ctx)
	require.NoError(t, err)
	defer store.Close()

	tracked, err := store.GetTrackedReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, "job-1", tracked.JobID)
	assert.True(t, tracked.MatchesPeriod(1, 2025))
}

func TestReportGenerateReplacesTrackedJob(t *testing.T) {
	setupReportEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/build-report", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"job_id": "job-2", "status": "queued"}`))
	}))

	cmd := reportGenerateCmd()
	cmd.SetArgs([]string{"--month", "2", "--year", "2025"})

	var execErr error
	out := captureStdout(t, func() {
		execErr = cmd.ExecuteContext(context.Background())
	})

	require.NoError(t, execErr)
	assert.Contains(t, out, "Tracked job job-1 covers 01/2025")
	assert.Contains(t, out, "Replacing tracked job job-1")

	ctx := context.Background()
	store, err := newStorage(ctx)
	require.NoError(t, err)
	defer store.Close()

	tracked, err := store.GetTrackedReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, "job-2", tracked.JobID)
	assert.True(t, tracked.MatchesPeriod(2, 2025))
}

func TestReportGenerateSamePeriodDoesNotWarn(t *testing.T) {
	setupReportEnv(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"job_id": "job-2", "status": "queued"}`))
	}))

	cmd := reportGenerateCmd()
	cmd.SetArgs([]string{"--month", "1", "--year", "2025"})

	var execErr error
	out := captureStdout(t, func() {
		execErr = cmd.ExecuteContext(context.Background())
	})

	require.NoError(t, execErr)
	assert.NotContains(t, out, "covers")
	assert.Contains(t, out, "Replacing tracked job job-1")
}

func TestReportDownloadFailureLeavesNoFile(t *testing.T) {
	setupReportEnv(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	output := filepath.Join(t.TempDir(), "report.pdf")
	cmd := reportDownloadCmd()
	cmd.SetArgs([]string{"--output", output})

	var execErr error
	captureStdout(t, func() {
		execErr = cmd.ExecuteContext(context.Background())
	})

	require.Error(t, execErr)
	assert.ErrorIs(t, execErr, common.ErrJobNotFound)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}
