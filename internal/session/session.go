// Package session is the single accessor for the locally persisted
// authentication state. Commands never read storage directly; they go through
// a Manager so the load/clear lifecycle and role normalization live in one
// place.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/petanihandal/auchan-cli/internal/common"
	"github.com/petanihandal/auchan-cli/internal/model"
	"github.com/petanihandal/auchan-cli/internal/service"
)

// Manager mediates access to the persisted session.
type Manager struct {
	store service.Storage
}

// NewManager creates a session manager over the given storage.
func NewManager(store service.Storage) *Manager {
	return &Manager{store: store}
}

// Load returns the persisted session, or ErrNoSession when none is stored.
func (m *Manager) Load(ctx context.Context) (*model.Session, error) {
	session, err := m.store.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	session.Role = model.NormalizeRole(session.Role)
	return session, nil
}

// Require returns the session or a user-facing error telling the user to log
// in first.
func (m *Manager) Require(ctx context.Context) (*model.Session, error) {
	session, err := m.Load(ctx)
	if errors.Is(err, common.ErrNoSession) {
		return nil, common.NewUserError("not logged in, run 'auchan auth login' first", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !session.Valid() {
		return nil, common.NewUserError("stored session is invalid, run 'auchan auth login' again", common.ErrNoSession)
	}
	return session, nil
}

// Save persists the session, replacing any previous one.
func (m *Manager) Save(ctx context.Context, session *model.Session) error {
	if session == nil || !session.Valid() {
		return common.ErrInvalidInput
	}
	session.Role = model.NormalizeRole(session.Role)
	if err := m.store.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Logging out of an already logged-out
// client is a no-op.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
