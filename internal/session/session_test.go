package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petanihandal/auchan-cli/internal/common"
	"github.com/petanihandal/auchan-cli/internal/model"
	"github.com/petanihandal/auchan-cli/internal/storage"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "auchan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))

	return NewManager(store)
}

func TestRequireWithoutSession(t *testing.T) {
	manager := newTestManager(t)

	_, err := manager.Require(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNoSession)

	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.UserMessage, "auchan auth login")
}

func TestSaveNormalizesRole(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, manager.Save(ctx, &model.Session{
		Token: "jwt",
		Role:  " treasurer ",
	}))

	loaded, err := manager.Require(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.RoleTreasurer, loaded.Role)
}

func TestSaveRejectsInvalidSession(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	assert.ErrorIs(t, manager.Save(ctx, nil), common.ErrInvalidInput)
	assert.ErrorIs(t, manager.Save(ctx, &model.Session{}), common.ErrInvalidInput)
}

func TestClearThenRequire(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, manager.Save(ctx, &model.Session{Token: "jwt", UserID: "u1"}))
	require.NoError(t, manager.Clear(ctx))

	_, err := manager.Require(ctx)
	assert.ErrorIs(t, err, common.ErrNoSession)
}
