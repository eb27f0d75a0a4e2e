package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petanihandal/auchan-cli/internal/common"
	"github.com/petanihandal/auchan-cli/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "auchan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestSessionRoundtrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.GetSession(ctx)
	assert.ErrorIs(t, err, common.ErrNoSession)

	session := &model.Session{
		Token:  "jwt-token",
		UserID: "user-1",
		OrgID:  "org-1",
		Role:   "TREASURER",
	}
	require.NoError(t, store.SaveSession(ctx, session))

	loaded, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, session, loaded)
}

func TestSaveSessionOverwrites(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, &model.Session{Token: "first", UserID: "u1", OrgID: "o1"}))
	require.NoError(t, store.SaveSession(ctx, &model.Session{Token: "second", UserID: "u2", OrgID: "o2", Role: "ADMIN"}))

	loaded, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.Token)
	assert.Equal(t, "u2", loaded.UserID)
}

func TestSaveSessionRejectsEmptyToken(t *testing.T) {
	store := newTestStorage(t)
	err := store.SaveSession(context.Background(), &model.Session{UserID: "u1"})
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestClearSession(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, &model.Session{Token: "t", UserID: "u", OrgID: "o"}))
	require.NoError(t, store.ClearSession(ctx))

	_, err := store.GetSession(ctx)
	assert.ErrorIs(t, err, common.ErrNoSession)

	// Clearing again is a no-op.
	require.NoError(t, store.ClearSession(ctx))
}

func TestTrackedReportRoundtrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.GetTrackedReport(ctx)
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, store.SaveTrackedReport(ctx, &model.TrackedReport{
		JobID: "job-1",
		Month: 3,
		Year:  2025,
	}))

	loaded, err := store.GetTrackedReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, "job-1", loaded.JobID)
	assert.True(t, loaded.MatchesPeriod(3, 2025))
	assert.False(t, loaded.MatchesPeriod(4, 2025))
	assert.False(t, loaded.UpdatedAt.IsZero())
}

func TestSaveTrackedReportOverwrites(t *testing.T) {
	// Only one job is tracked at a time; a new one replaces the old record.
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTrackedReport(ctx, &model.TrackedReport{JobID: "job-1", Month: 1, Year: 2025}))
	require.NoError(t, store.SaveTrackedReport(ctx, &model.TrackedReport{JobID: "job-2", Month: 2, Year: 2025}))

	loaded, err := store.GetTrackedReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, "job-2", loaded.JobID)
	assert.Equal(t, 2, loaded.Month)
}

func TestSaveTrackedReportRequiresJobID(t *testing.T) {
	store := newTestStorage(t)
	err := store.SaveTrackedReport(context.Background(), &model.TrackedReport{Month: 1, Year: 2025})
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx))

	version, err := store.currentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}
