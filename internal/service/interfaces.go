// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/petanihandal/auchan-cli/internal/model"
)

// Storage defines the contract for the local persistence layer. The client keeps
// only transient, non-authoritative state here: the active session and the most
// recently tracked AI report job.
type Storage interface {
	// Session operations
	GetSession(ctx context.Context) (*model.Session, error)
	SaveSession(ctx context.Context, session *model.Session) error
	ClearSession(ctx context.Context) error

	// Report job tracking. Only the most recent report job is tracked;
	// saving a new one overwrites the previous record.
	GetTrackedReport(ctx context.Context) (*model.TrackedReport, error)
	SaveTrackedReport(ctx context.Context, report *model.TrackedReport) error
	ClearTrackedReport(ctx context.Context) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for remote operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
