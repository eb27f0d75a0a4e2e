package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/petanihandal/auchan-cli/internal/common"
	"github.com/petanihandal/auchan-cli/internal/model"
)

// GetTrackedReport returns the most recently tracked report job, or
// ErrNotFound when no job has been tracked yet.
func (s *SQLiteStorage) GetTrackedReport(ctx context.Context) (*model.TrackedReport, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var report model.TrackedReport
	row := s.db.QueryRowContext(ctx,
		`SELECT job_id, month, year, updated_at FROM report_jobs WHERE id = 1`)
	err := row.Scan(&report.JobID, &report.Month, &report.Year, &report.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tracked report: %w", err)
	}
	return &report, nil
}

// SaveTrackedReport stores the report job, overwriting any previously tracked
// one. The previous job may still complete server-side; the client simply
// stops tracking it.
func (s *SQLiteStorage) SaveTrackedReport(ctx context.Context, report *model.TrackedReport) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if report == nil {
		return fmt.Errorf("%w: report", ErrNilParameter)
	}
	if err := validateString(report.JobID, "jobID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO report_jobs (id, job_id, month, year, updated_at)
		VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			job_id = excluded.job_id,
			month = excluded.month,
			year = excluded.year,
			updated_at = CURRENT_TIMESTAMP`,
		report.JobID, report.Month, report.Year)
	if err != nil {
		return fmt.Errorf("failed to save tracked report: %w", err)
	}
	return nil
}

// ClearTrackedReport drops the tracked report job record.
func (s *SQLiteStorage) ClearTrackedReport(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM report_jobs WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear tracked report: %w", err)
	}
	return nil
}
