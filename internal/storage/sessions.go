package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/petanihandal/auchan-cli/internal/common"
	"github.com/petanihandal/auchan-cli/internal/model"
)

// GetSession returns the stored session, or ErrNoSession when none exists.
func (s *SQLiteStorage) GetSession(ctx context.Context) (*model.Session, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var session model.Session
	row := s.db.QueryRowContext(ctx,
		`SELECT token, user_id, org_id, role FROM sessions WHERE id = 1`)
	err := row.Scan(&session.Token, &session.UserID, &session.OrgID, &session.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return &session, nil
}

// SaveSession stores the session, replacing any previous one.
func (s *SQLiteStorage) SaveSession(ctx context.Context, session *model.Session) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("%w: session", ErrNilParameter)
	}
	if err := validateString(session.Token, "token"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, token, user_id, org_id, role, created_at)
		VALUES (1, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			user_id = excluded.user_id,
			org_id = excluded.org_id,
			role = excluded.role,
			created_at = CURRENT_TIMESTAMP`,
		session.Token, session.UserID, session.OrgID, session.Role)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// ClearSession removes the stored session. Clearing an absent session is not
// an error.
func (s *SQLiteStorage) ClearSession(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
