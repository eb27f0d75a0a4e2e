package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/petanihandal/auchan-cli/internal/ai"
	"github.com/petanihandal/auchan-cli/internal/api"
	"github.com/petanihandal/auchan-cli/internal/common"
	"github.com/petanihandal/auchan-cli/internal/config"
	"github.com/petanihandal/auchan-cli/internal/model"
	"github.com/petanihandal/auchan-cli/internal/service"
	"github.com/petanihandal/auchan-cli/internal/session"
	"github.com/petanihandal/auchan-cli/internal/storage"
)

func statePath() string {
	path := viper.GetString("database.path")
	if path == "" {
		return config.DefaultStatePath()
	}
	return config.ExpandPath(path)
}

// newStorage opens the local state database and runs any pending
// migrations. Callers own the returned storage and must Close it.
func newStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(statePath())
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("migrating state database: %w", err)
	}

	return store, nil
}

func newSessionManager(store *storage.SQLiteStorage) *session.Manager {
	return session.NewManager(store)
}

// requireSession opens storage and loads the active session in one step.
// Most commands start here.
func requireSession(ctx context.Context) (*storage.SQLiteStorage, *model.Session, error) {
	store, err := newStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	sess, err := newSessionManager(store).Require(ctx)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	return store, sess, nil
}

func apiBaseURL() string {
	if url := viper.GetString("api.base_url"); url != "" {
		return url
	}
	return api.DefaultBaseURL
}

func aiBaseURL() string {
	if url := viper.GetString("ai.base_url"); url != "" {
		return url
	}
	return ai.DefaultBaseURL
}

func newAPIClient(sess *model.Session) *api.Client {
	token := ""
	if sess != nil {
		token = sess.Token
	}
	return api.NewClient(apiBaseURL(), token)
}

func newAIClient() *ai.Client {
	return ai.NewClient(aiBaseURL())
}

// fetchWithRetry runs a read-only remote call with backoff. Errors outside
// the retryable set (auth failures, bad input) abort immediately.
func fetchWithRetry(ctx context.Context, op func() error) error {
	return common.WithRetry(ctx, func() error {
		err := op()
		if err != nil && !common.IsRetryable(err) {
			return &common.RetryableError{Err: err, Retryable: false}
		}
		return err
	}, service.RetryOptions{MaxAttempts: 3})
}

// requireRole rejects sessions whose role is outside the allowed set,
// mirroring the role gates on the navigation menu.
func requireRole(sess *model.Session, roles ...string) error {
	role := model.NormalizeRole(sess.Role)
	for _, allowed := range roles {
		if role == allowed {
			return nil
		}
	}
	return common.NewUserError(
		fmt.Sprintf("this command requires one of the roles: %s", strings.Join(roles, ", ")),
		common.ErrForbidden,
	)
}
